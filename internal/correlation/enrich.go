package correlation

// categoryDescriptions summarizes each alert category for the detail view
var categoryDescriptions = map[string]string{
	"Phishing":         "Attempts to steal credentials or install malware via deceptive emails or websites.",
	"InitialAccess":    "Techniques used to gain an initial foothold in the network.",
	"Execution":        "Techniques resulting in adversary-controlled code running on a system.",
	"Persistence":      "Techniques used to maintain access across restarts or credential changes.",
	"CredentialAccess": "Techniques for stealing credentials like account names and passwords.",
	"LateralMovement":  "Techniques used to move through the environment and access resources.",
	"Collection":       "Techniques used to gather data relevant to the adversary goals.",
	"Impact":           "Techniques used to disrupt availability or compromise integrity of systems.",
	"Malware":          "Malicious software detected on the system or in communications.",
}

// remediationSteps lists the recommended response checklist per category.
// Unknown categories fall back to the generic malware checklist.
var remediationSteps = map[string][]string{
	"Phishing": {
		"Block the sending domain at the email gateway",
		"Remove the phishing email from all affected mailboxes",
		"Reset credentials for any users who clicked the link",
		"Enable Safe Links and Safe Attachments policies",
		"Review and update anti-phishing policies",
	},
	"InitialAccess": {
		"Revoke all active sessions for the compromised account",
		"Reset the account password immediately",
		"Review sign-in logs for suspicious activity",
		"Enable MFA if not already configured",
		"Block the source IP address at the firewall",
	},
	"Execution": {
		"Isolate the affected device immediately",
		"Kill the suspicious process",
		"Scan the device for additional malware",
		"Review PowerShell execution logs",
		"Enable PowerShell script block logging",
	},
	"Persistence": {
		"Remove the malicious inbox rule or registry key",
		"Review all recently created rules and scheduled tasks",
		"Audit admin accounts for unauthorized changes",
		"Enable audit logging for rule creation events",
	},
	"CredentialAccess": {
		"Reset all credentials on the affected device",
		"Rotate service account passwords",
		"Isolate the device from the network",
		"Check for lateral movement using stolen credentials",
		"Enable Credential Guard on Windows devices",
	},
	"LateralMovement": {
		"Isolate all affected devices immediately",
		"Reset credentials used for lateral movement",
		"Review network logs for additional compromised hosts",
		"Block NTLM authentication where possible",
		"Enable Protected Users security group",
	},
	"Collection": {
		"Revoke access tokens and active sessions",
		"Review mailbox audit logs for data access",
		"Check for data exfiltration to external locations",
		"Enable mailbox auditing if not already enabled",
	},
	"Impact": {
		"Isolate all affected systems immediately",
		"Do not pay any ransom demands",
		"Preserve forensic evidence before remediation",
		"Restore from clean backups",
		"Engage incident response team",
		"Report to relevant authorities",
	},
	"Malware": {
		"Isolate the affected device immediately",
		"Run a full antivirus scan",
		"Remove the malicious file",
		"Check for persistence mechanisms",
		"Review network connections from the device",
	},
}

// CategoryDescription returns a summary of an alert category, or an empty
// string for an unknown category.
func CategoryDescription(category string) string {
	return categoryDescriptions[category]
}

// RemediationSteps returns the response checklist for an alert category
func RemediationSteps(category string) []string {
	if steps, ok := remediationSteps[category]; ok {
		return steps
	}
	return remediationSteps["Malware"]
}
