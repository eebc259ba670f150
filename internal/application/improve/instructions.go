package improve

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/doeshing/textpolish/internal/domain"
)

// instruction pairs the per-language template of an action with its model tier.
type instruction struct {
	templates map[domain.Language]*template.Template
	tier      domain.ModelTier
}

type instructionData struct {
	Text string
}

var instructions = map[domain.Action]instruction{
	domain.ActionFixGrammar: newInstruction(domain.TierLight, map[domain.Language]string{
		domain.LanguageGerman:  `Korrigiere die Rechtschreibung und Grammatik des folgenden Textes. Gib nur den korrigierten Text zurück, ohne einleitende Sätze, Erklärungen oder Formatierungen wie Markdown. Originaltext: "{{.Text}}"`,
		domain.LanguageEnglish: `Correct the spelling and grammar of the following text. Return only the corrected text, without introductory sentences, explanations or formatting such as Markdown. Original text: "{{.Text}}"`,
	}),
	domain.ActionSummarize: newInstruction(domain.TierHeavy, map[domain.Language]string{
		domain.LanguageGerman:  `Fasse den folgenden Text kurz und prägnant zusammen. Gib nur die Zusammenfassung zurück. Originaltext: "{{.Text}}"`,
		domain.LanguageEnglish: `Summarize the following text briefly and concisely. Return only the summary, without explanations or formatting such as Markdown. Original text: "{{.Text}}"`,
	}),
	domain.ActionExpand: newInstruction(domain.TierHeavy, map[domain.Language]string{
		domain.LanguageGerman:  `Erweitere den folgenden Text. Füge relevante Details hinzu, um ihn umfassender zu machen. Gib nur den erweiterten Text zurück. Originaltext: "{{.Text}}"`,
		domain.LanguageEnglish: `Expand the following text. Add relevant details to make it more comprehensive. Return only the expanded text, without explanations or formatting such as Markdown. Original text: "{{.Text}}"`,
	}),
	domain.ActionToneProfessional: newInstruction(domain.TierLight, map[domain.Language]string{
		domain.LanguageGerman:  `Formuliere den folgenden Text in einem professionellen und formellen Ton um. Gib nur den umformulierten Text zurück. Originaltext: "{{.Text}}"`,
		domain.LanguageEnglish: `Rewrite the following text in a professional and formal tone. Return only the rewritten text, without explanations or formatting such as Markdown. Original text: "{{.Text}}"`,
	}),
	domain.ActionToneCasual: newInstruction(domain.TierLight, map[domain.Language]string{
		domain.LanguageGerman:  `Schreibe den folgenden Text in einem lockeren und informellen Ton um. Gib nur den umgeschriebenen Text zurück. Originaltext: "{{.Text}}"`,
		domain.LanguageEnglish: `Rewrite the following text in a relaxed and informal tone. Return only the rewritten text, without explanations or formatting such as Markdown. Original text: "{{.Text}}"`,
	}),
}

func newInstruction(tier domain.ModelTier, raw map[domain.Language]string) instruction {
	templates := make(map[domain.Language]*template.Template, len(raw))
	for lang, body := range raw {
		templates[lang] = template.Must(template.New(string(lang)).Parse(body))
	}
	return instruction{templates: templates, tier: tier}
}

// RenderInstruction builds the provider instruction for action with text embedded verbatim.
func RenderInstruction(lang domain.Language, action domain.Action, text string) (string, domain.ModelTier, error) {
	inst, ok := instructions[action]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnknownAction, string(action))
	}
	tmpl, ok := inst.templates[lang]
	if !ok {
		tmpl = inst.templates[domain.DefaultLanguage]
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, instructionData{Text: text}); err != nil {
		return "", "", fmt.Errorf("render instruction: %w", err)
	}
	return buf.String(), inst.tier, nil
}
