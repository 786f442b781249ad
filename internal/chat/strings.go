package chat

import "strings"

// Canned strings are looked up with an exhaustive switch; the English arm is
// the default for any unknown code rather than a silent map miss.

func GreetingMessage(lang Language) string {
	switch lang {
	case LanguageHindi:
		return "नमस्ते! मैं आपका कैंपस सहायक हूँ। प्रवेश, फीस, छात्रावास या पुस्तकालय के बारे में पूछिए।"
	case LanguageRajasthani:
		return "खम्मा घणी! म्हूं थारो कैंपस सहायक हूं। प्रवेश, फीस, छात्रावास या पुस्तकालय रे बारे में पूछो।"
	default:
		return "Hello! I am your campus assistant. Ask me about admissions, fees, hostel or library facilities."
	}
}

func NoInfoMessage(lang Language) string {
	switch lang {
	case LanguageHindi:
		return "मुझे इस बारे में पर्याप्त जानकारी नहीं मिली। कृपया प्रवेश, फीस या सुविधाओं के बारे में पूछें।"
	case LanguageRajasthani:
		return "म्हाने इण बारे में पूरी जाणकारी कोनी मिली। प्रवेश, फीस या सुविधावां रे बारे में पूछो।"
	default:
		return "I could not find enough information about that. Try asking about admissions, fees or campus facilities."
	}
}

func AnswerPrefix(lang Language) string {
	switch lang {
	case LanguageHindi:
		return "मेरे पास मौजूद जानकारी के अनुसार: "
	case LanguageRajasthani:
		return "म्हारे कने री जाणकारी रे हिसाब सूं: "
	default:
		return "Based on the information I have: "
	}
}

func TechnicalDifficultyMessage(lang Language) string {
	switch lang {
	case LanguageHindi:
		return "क्षमा करें, अभी तकनीकी समस्या आ रही है। कृपया थोड़ी देर बाद फिर प्रयास करें।"
	case LanguageRajasthani:
		return "माफ करजो, अबार तकनीकी दिक्कत है। थोड़ी ताळ पछै फेर कोसिस करजो।"
	default:
		return "Sorry, I am having technical difficulty right now. Please try again in a moment."
	}
}

// Greeting tokens in every supported language, matched anchored at the start
// of the trimmed, lowercased message.
var greetingTokens = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"namaste", "namaskar", "नमस्ते", "नमस्कार",
	"khamma ghani", "ram ram", "खम्मा घणी", "राम राम",
}

func IsGreeting(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, "!.?,। ")
	if normalized == "" {
		return false
	}
	for _, token := range greetingTokens {
		if normalized == token || strings.HasPrefix(normalized, token+" ") {
			return true
		}
	}
	return false
}
