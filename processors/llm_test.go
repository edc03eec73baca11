package processors

import "fmt"

var errFake = fmt.Errorf("scripted failure")

// fakeCompleter scripts LLM responses for tests. Responses are served in
// order; once exhausted the last one repeats. A non-nil err fails every
// call instead.
type fakeCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeCompleter) Complete(prompt string, temperature float32, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("no scripted response")
	}
	i := len(f.prompts) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}
