// Package intake screens user input before it is analyzed.
//
// Screening first looks for red flag phrases that call for medical
// attention, then asks an ai.ContextAnalyzer to correct the text and judge
// whether it describes enough to recommend anything. The outcome is one of
// four statuses:
//
//	StatusEmergency     a red flag was found; nothing should be recommended
//	StatusInsufficient  the description is too thin; ask the clarifying question
//	StatusOK            proceed with the corrected text
//	StatusUnverified    the model answer was unusable; proceed with the original text
package intake
