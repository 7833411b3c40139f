package generator

// LyricsPersona is the fixed system instruction sent with every request.
const LyricsPersona = "You are a skilled hip-hop lyricist. Create hip-hop lyrics in the style of modern rap music. Include a verse and a hook. Format the output with clear section labels and line breaks."

// LyricsPrefix precedes the user's topic in the user message.
const LyricsPrefix = "Write hip-hop lyrics about: "

const (
	LyricsTemperature = 0.7
	LyricsMaxTokens   = 500
)

// Prompt is one provider request: a system message, a user message and the
// sampling parameters.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// BuildLyricsPrompt is the only place a lyrics request is assembled.
//
// Escaping policy: topic is appended to LyricsPrefix verbatim. It is not
// trimmed, escaped or filtered, so anything the user types (newlines, quotes,
// instructions aimed at the model) reaches the provider unchanged. Callers that
// share a provider account between tenants must filter topic before this call.
func BuildLyricsPrompt(topic string) Prompt {
	return Prompt{
		System:      LyricsPersona,
		User:        LyricsPrefix + topic,
		Temperature: LyricsTemperature,
		MaxTokens:   LyricsMaxTokens,
	}
}
