package tree

// parse.go — the line-oriented document reader.
//
// A document is a sequence of declarations (`Event: <id>`, `Gate: <id>`),
// property lines (`- <key>: <value>`), full-line comments (`#`), and blank
// lines. A blank line closes the open object. Two newlines are appended to
// the text before splitting, so the final object is always closed without a
// special case at end of input.

import (
	"regexp"
	"strings"
)

var (
	declarationPattern = regexp.MustCompile(`^(Event|Gate): \s*(.+?)\s*$`)
	propertyPattern    = regexp.MustCompile(`^- (\S+): \s*(.+?)\s*$`)
	commentPattern     = regexp.MustCompile(`^#`)
	blankPattern       = regexp.MustCompile(`^\s*$`)
	idPattern          = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

const idExplainer = "ids may only contain letters, digits, underscores, and hyphens"

func validID(id string) bool {
	return idPattern.MatchString(id)
}

// parse reads the document text into declared events and gates. Graph
// validation and computation happen afterwards, over the parsed tree.
func parse(text string) (*FaultTree, *Error) {
	ft := &FaultTree{
		EventByID: make(map[string]*Event),
		GateByID:  make(map[string]*Gate),
	}
	declLine := make(map[string]int)
	timeUnitLine := 0

	var openEvent *eventDraft
	var openGate *gateDraft
	eventIndex := 0

	for i, raw := range strings.Split(text+"\n\n", "\n") {
		line := i + 1

		if m := declarationPattern.FindStringSubmatch(raw); m != nil {
			class, id := m[1], m[2]
			if openEvent != nil {
				return nil, errf(KindSyntax, line,
					"%s declared before a blank line closes Event `%s`", class, openEvent.id)
			}
			if openGate != nil {
				return nil, errf(KindSyntax, line,
					"%s declared before a blank line closes Gate `%s`", class, openGate.id)
			}
			if !validID(id) {
				return nil, errf(KindIdentity, line,
					"invalid id `%s` for %s; %s", id, class, idExplainer)
			}
			if prev, ok := declLine[id]; ok {
				return nil, errf(KindIdentity, line,
					"id `%s` already used in declaration at line %d", id, prev)
			}
			declLine[id] = line
			if class == "Event" {
				openEvent = newEventDraft(id, eventIndex)
				eventIndex++
			} else {
				openGate = newGateDraft(id)
			}
			continue
		}

		if m := propertyPattern.FindStringSubmatch(raw); m != nil {
			key, value := m[1], m[2]
			switch {
			case openEvent != nil:
				if err := openEvent.set(key, value, line); err != nil {
					return nil, err
				}
			case openGate != nil:
				if err := openGate.set(key, value, line); err != nil {
					return nil, err
				}
			case key == "time_unit":
				if timeUnitLine != 0 {
					return nil, errf(KindProperty, line,
						"time_unit already set at line %d", timeUnitLine)
				}
				if len(declLine) > 0 {
					return nil, errf(KindProperty, line,
						"time_unit may only be set before the first Event or Gate declaration")
				}
				ft.TimeUnit = value
				timeUnitLine = line
			default:
				return nil, errf(KindSyntax, line,
					"dangling property `%s` outside any Event or Gate; the only tree-level key is time_unit", key)
			}
			continue
		}

		if commentPattern.MatchString(raw) {
			continue
		}

		if blankPattern.MatchString(raw) {
			if openEvent != nil {
				event, err := openEvent.freeze(line)
				if err != nil {
					return nil, err
				}
				ft.Events = append(ft.Events, event)
				ft.EventByID[event.ID] = event
				openEvent = nil
			}
			if openGate != nil {
				gate, err := openGate.freeze(line)
				if err != nil {
					return nil, err
				}
				ft.Gates = append(ft.Gates, gate)
				ft.GateByID[gate.ID] = gate
				openGate = nil
			}
			continue
		}

		return nil, errf(KindSyntax, line, "unable to parse line `%s`", raw)
	}

	return ft, nil
}
