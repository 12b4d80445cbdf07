// Package disclaimers holds the fixed educational-use copy served alongside
// catalog and compatibility responses. These strings are a compliance surface:
// they are returned verbatim and never derived from data.
package disclaimers

const Title = "Educational Use Only"

const Summary = "This platform is educational and informational only. It is not medical advice and must never replace professional care."

// Claims are the individual disclaimer statements shown to users.
var Claims = []string{
	"This content is not medical advice, diagnosis, or treatment guidance.",
	"This platform is not a substitute for care from a licensed physician, pharmacist, or other qualified clinician.",
	"Always consult your physician or pharmacist before starting, stopping, or combining any substance or protocol.",
	"Never combine supplements or biohacking interventions with prescription medications without clinician oversight.",
	"Higher-risk groups require medical supervision: pregnancy, breastfeeding, minors, chronic disease, psychiatric history, and polypharmacy.",
	"If you experience an adverse reaction, seek immediate professional medical care or emergency services.",
}

const EmergencyGuidance = "For severe symptoms (chest pain, breathing difficulty, confusion, fainting, seizure, severe allergic reaction), call your local emergency number immediately."

// CompatibilitySafetyReminder accompanies every compatibility outcome
// regardless of verdict.
const CompatibilitySafetyReminder = "Compatibility outputs are heuristic educational signals, not clinical interaction clearance. Review with your physician or pharmacist before use."
