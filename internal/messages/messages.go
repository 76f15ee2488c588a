// Package messages holds every user-visible text in one place.
package messages

const (
	MsgReasonSpam = "repeated identical messages"

	MsgReportAck = "✅ Your report was sent to the admins. Thank you."

	// New report prompt sent to each admin. Args: reporter, reported, group,
	// excerpt.
	MsgNewReport = "🚨 *New report!*\n\n👤 Reporter: %s\n🎯 Reported: %s\n👥 Group: %s\n\n📝 Message:\n%s"

	MsgReportAcceptedSuffix = "\n\n✅ *Accepted*"
	MsgReportRejectedSuffix = "\n\n❌ *Rejected*"

	MsgReporterAccepted = "✅ Your report in *%s* was accepted. The reported user has been muted."
	MsgReporterRejected = "❌ Your report in *%s* was reviewed and rejected."

	// Group notice after a restriction. Args: user mention, duration, reason.
	MsgUserMuted = "🔇 %s has been muted for %s (%s)."

	MsgReasonFalseReports    = "repeated false reports"
	MsgReasonAcceptedReport  = "accepted report"
	MsgReasonSpamRestriction = "message flooding"

	MsgRestrictFailed  = "⚠️ Could not restrict %s in %s: %s"
	MsgBotNotAdmin     = "⚠️ I need administrator rights in *%s* to mute %s."
	MsgAlreadyResolved = "This report has already been resolved."
	MsgReportNotFound  = "This report no longer exists."
	MsgNotAllowed      = "You are not allowed to do that."
	MsgDecisionFailed  = "Could not apply the decision, try again."

	MsgStart = "👋 I forward member reports to the admins and keep the group link registry.\n\nReply to a message with the trigger word to report it.\nUse /links to browse the registry."

	MsgLinkAdded          = "🔗 Link #%d added."
	MsgLinkDeleted        = "🗑 Link #%d deleted."
	MsgLinkNotFound       = "No link with that number."
	MsgLinkUsage          = "Usage: /addlink <url> [date] or /addlink <number> <url> [date]"
	MsgLinkQueryUsage     = "Usage: /link <number>"
	MsgLinkNumberConflict = "Link numbers must increase; pick a number above the last entry."
	MsgLinksEmpty         = "The link registry is empty."
	MsgLinksHeader        = "🔗 *Link registry*\n"
)
