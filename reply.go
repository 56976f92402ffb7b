package advisor

// Prompt is a natural-language instruction sent to a generative-text model.
type Prompt string

func (p Prompt) String() string { return string(p) }

// Reply is the outcome of a model call: Err is nil on success and Text holds the answer.
type Reply struct {
	Text string
	Err  error
}

// String returns the text to display for this reply.
//
// A failed reply reads "Error generating response: <cause>".
func (r Reply) String() string {
	if r.Err != nil {
		return "Error generating response: " + r.Err.Error()
	}
	return r.Text
}

// OK reports whether the reply holds an answer.
func (r Reply) OK() bool { return r.Err == nil }
