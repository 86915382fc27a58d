// Package reply builds the welcome message sent in answer to /start: the
// personalised text and the rows of link buttons under it.
package reply

// Action is a labeled link button.
type Action struct {
	Label string
	URL   string
}

// Payload is a composed reply. It is immutable once built: accessors return
// copies.
type Payload struct {
	text string
	rows [][]Action
}

// NewPayload builds a payload from text and rows, copying rows.
func NewPayload(text string, rows [][]Action) Payload {
	return Payload{text: text, rows: copyRows(rows)}
}

// Text returns the message body.
func (p Payload) Text() string {
	return p.text
}

// Rows returns a copy of the action rows.
func (p Payload) Rows() [][]Action {
	return copyRows(p.rows)
}

// IsZero reports whether p carries neither text nor actions.
func (p Payload) IsZero() bool {
	return p.text == "" && len(p.rows) == 0
}

func copyRows(rows [][]Action) [][]Action {
	if rows == nil {
		return nil
	}
	out := make([][]Action, len(rows))
	for i, row := range rows {
		out[i] = append([]Action(nil), row...)
	}
	return out
}
