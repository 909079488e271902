package correlation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tactics.yaml
var tacticsYAML []byte

// UnknownTactic labels any technique absent from the embedded table
const UnknownTactic = "Unknown"

type tacticTable struct {
	Tactics map[string]string `yaml:"tactics"`
}

var tacticLabels map[string]string

func init() {
	var table tacticTable
	if err := yaml.Unmarshal(tacticsYAML, &table); err != nil {
		panic(fmt.Sprintf("correlation: bad embedded tactic table: %v", err))
	}
	tacticLabels = table.Tactics
}

// TacticFor returns the tactic label for a technique ID. The lookup is an
// exact string match; sub-technique IDs do not fall back to their parent.
func TacticFor(technique string) string {
	if tactic, ok := tacticLabels[technique]; ok {
		return tactic
	}
	return UnknownTactic
}
