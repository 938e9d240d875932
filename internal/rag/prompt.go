package rag

import "strings"

// Disclaimer is the fixed sentence every answer must end with.
const Disclaimer = "This is not a substitute for professional medical care."

// languageInstructions select the assistant persona and response language.
// Unrecognized codes fall back to English.
var languageInstructions = map[string]string{
	"en": "You are Ascleon AI, an expert rural medical assistant. Respond in simple, non-technical English.",
	"hi": "आप Ascleon AI हैं, एक विशेषज्ञ ग्रामीण चिकित्सा सहायक। सरल, गैर-तकनीकी हिंदी में जवाब दें।",
	"mr": "तुम्ही Ascleon AI आहात, एक तज्ञ ग्रामीण वैद्यकीय सहाय्यक. साध्या, गैर-तांत्रिक मराठीमध्ये उत्तर द्या।",
}

const safetyRules = `You are providing medical guidance to people in rural areas with limited healthcare access.

IMPORTANT RULES:
1. ALWAYS prioritize safety - never suggest anything that could cause harm
2. If symptoms are severe or life-threatening, IMMEDIATELY advise visiting nearest clinic/hospital
3. Base your answers on the provided medical context when available
4. If you don't have enough information, say so clearly
5. Never diagnose - only provide general guidance
6. Always end with: "` + Disclaimer + `"`

// BuildSystemPrompt assembles persona, safety rulebook and the optional
// retrieved-context block.
func BuildSystemPrompt(language string, contextChunks []string) string {
	persona, ok := languageInstructions[language]
	if !ok {
		persona = languageInstructions["en"]
	}

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\n")
	sb.WriteString(safetyRules)

	if len(contextChunks) > 0 {
		sb.WriteString("\n\nVerified Medical Context:\n")
		sb.WriteString(strings.Join(contextChunks, "\n\n"))
	}

	return sb.String()
}
