package services

import "strings"

// The model signals that it needs live weather data by emitting a delimited
// marker instead of guessing, e.g. "[[WEATHER: Paris]]". The prefix is
// configuration (WEATHER_TRIGGER_PREFIX); the closing delimiter is fixed.
const triggerSuffix = "]]"

// WeatherToolCall is a parsed weather trigger found in model output.
type WeatherToolCall struct {
	Location string
}

// ToolCallParser detects weather trigger markers in completion text. The
// detection grammar lives here, isolated from completion calling, so it can
// be tested without a live provider.
type ToolCallParser struct {
	triggerPrefix string
}

func NewToolCallParser(triggerPrefix string) *ToolCallParser {
	return &ToolCallParser{triggerPrefix: triggerPrefix}
}

// Parse scans text for the first weather trigger marker. It returns nil when
// no well-formed marker is present (no prefix, unterminated marker, or an
// empty location).
func (p *ToolCallParser) Parse(text string) *WeatherToolCall {
	if p.triggerPrefix == "" {
		return nil
	}

	start := strings.Index(text, p.triggerPrefix)
	if start < 0 {
		return nil
	}

	rest := text[start+len(p.triggerPrefix):]
	end := strings.Index(rest, triggerSuffix)
	if end < 0 {
		return nil
	}

	location := strings.TrimSpace(rest[:end])
	if location == "" {
		return nil
	}

	return &WeatherToolCall{Location: location}
}

// Strip removes every well-formed trigger marker from text, cleaning up the
// reply shown to the user when augmentation is skipped.
func (p *ToolCallParser) Strip(text string) string {
	for {
		start := strings.Index(text, p.triggerPrefix)
		if start < 0 {
			return strings.TrimSpace(text)
		}
		rest := text[start+len(p.triggerPrefix):]
		end := strings.Index(rest, triggerSuffix)
		if end < 0 {
			return strings.TrimSpace(text)
		}
		text = text[:start] + rest[end+len(triggerSuffix):]
	}
}
