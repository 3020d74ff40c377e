package services

import "testing"

func TestToolCallParser_Parse(t *testing.T) {
	parser := NewToolCallParser("[[WEATHER:")

	tests := []struct {
		name         string
		text         string
		wantLocation string
		wantNil      bool
	}{
		{"simple trigger", "[[WEATHER: Paris]]", "Paris", false},
		{"trigger without space", "[[WEATHER:Tokyo]]", "Tokyo", false},
		{"trigger inside prose", "Let me check. [[WEATHER: New York]] One moment.", "New York", false},
		{"multi-word location", "[[WEATHER: Rio de Janeiro]]", "Rio de Janeiro", false},
		{"japanese location", "[[WEATHER: 東京]]", "東京", false},
		{"first of two triggers wins", "[[WEATHER: Paris]] [[WEATHER: London]]", "Paris", false},
		{"no trigger", "It is sunny today.", "", true},
		{"unterminated trigger", "[[WEATHER: Paris", "", true},
		{"empty location", "[[WEATHER: ]]", "", true},
		{"empty text", "", "", true},
		{"suffix before prefix", "]] [[WEATHER: Paris]]", "Paris", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			call := parser.Parse(tc.text)
			if tc.wantNil {
				if call != nil {
					t.Errorf("Expected nil, got %+v", call)
				}
				return
			}
			if call == nil {
				t.Fatal("Expected a tool call, got nil")
			}
			if call.Location != tc.wantLocation {
				t.Errorf("Expected location %q, got %q", tc.wantLocation, call.Location)
			}
		})
	}
}

func TestToolCallParser_CustomPrefix(t *testing.T) {
	parser := NewToolCallParser("<<wx:")

	call := parser.Parse("checking <<wx: Berlin]] now")
	if call == nil || call.Location != "Berlin" {
		t.Errorf("Expected Berlin with custom prefix, got %+v", call)
	}

	if got := parser.Parse("[[WEATHER: Berlin]]"); got != nil {
		t.Errorf("Default marker should not match custom prefix, got %+v", got)
	}
}

func TestToolCallParser_EmptyPrefixDisablesDetection(t *testing.T) {
	parser := NewToolCallParser("")

	if got := parser.Parse("[[WEATHER: Paris]]"); got != nil {
		t.Errorf("Expected nil with empty prefix, got %+v", got)
	}
}

func TestToolCallParser_Strip(t *testing.T) {
	parser := NewToolCallParser("[[WEATHER:")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare trigger", "[[WEATHER: Paris]]", ""},
		{"trigger inside prose", "Sunny. [[WEATHER: Paris]] Enjoy!", "Sunny.  Enjoy!"},
		{"multiple triggers", "[[WEATHER: Paris]][[WEATHER: London]] done", "done"},
		{"unterminated left alone", "text [[WEATHER: Paris", "text [[WEATHER: Paris"},
		{"no trigger", "plain reply", "plain reply"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parser.Strip(tc.text); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
