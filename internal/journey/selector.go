package journey

import (
	"encoding/json"
	"strings"
)

// Selector type tags observed in source journeys.
const (
	SelectorGuess   = "GUESS"
	SelectorText    = "ELEMENT_TEXT"
	SelectorXPath   = "XPATH"
	SelectorXPathID = "XPATH_ID"
	SelectorCSS     = "CSS_SELECTOR"
	SelectorDOMID   = "ID"
)

// guessPayload is the small serialized structure a GUESS selector carries in
// its value field.
type guessPayload struct {
	Clue string `json:"clue"`
}

// ResolveSelectors picks a single human-readable label for a step target.
// Priority: heuristic clue, then literal element text, then a structural
// path, then any other non-empty selector value as a last resort. An empty
// label is returned only when no usable selector exists at all.
func ResolveSelectors(selectors []Selector) string {
	if len(selectors) == 0 {
		return ""
	}

	var text, path, fallback string
	for _, sel := range selectors {
		value := strings.TrimSpace(sel.Value)
		if value == "" {
			continue
		}
		switch strings.ToUpper(sel.Type) {
		case SelectorGuess:
			if clue := extractClue(value); clue != "" {
				return clue
			}
		case SelectorText:
			if text == "" {
				text = value
			}
		case SelectorXPath, SelectorXPathID, SelectorCSS, SelectorDOMID:
			if path == "" {
				path = value
			}
		default:
			if fallback == "" {
				fallback = value
			}
		}
	}

	if text != "" {
		return text
	}
	if path != "" {
		return path
	}
	return fallback
}

// extractClue parses a GUESS selector value. The payload is JSON in every
// observed journey, but a bare string is accepted too rather than losing
// the selector.
func extractClue(value string) string {
	var payload guessPayload
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		if strings.HasPrefix(value, "{") {
			return ""
		}
		return value
	}
	return strings.TrimSpace(payload.Clue)
}
