package parser

import (
	"strings"
)

// conlluSystemPrompt instructs a chat model to behave as a dependency parser.
const conlluSystemPrompt = `You are a Universal Dependencies parser.
Annotate the text in the user message in CoNLL-U format: split it into
sentences and tokens, and give every token its ten tab-separated columns
(ID, FORM, LEMMA, UPOS, XPOS, FEATS, HEAD, DEPREL, DEPS, MISC), using "_"
for unknown values. Start each sentence with "# text = " followed by the
sentence, and separate sentences with one blank line.
Reply with the CoNLL-U only, no commentary and no code fences.`

// llmMaxTokens bounds the completion length of LLM backends.
const llmMaxTokens = 4096

// stripFences removes a Markdown code fence some models wrap around the
// block despite the prompt.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		return s
	}
	t = strings.TrimSuffix(strings.TrimRight(t, " \t\n"), "```")
	return strings.TrimRight(t, " \t\n") + "\n"
}
