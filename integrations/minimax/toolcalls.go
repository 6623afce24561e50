package minimax

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Parsing de repli : extraction des appels d'outil exprimés en balisage
// inline au lieu du champ structuré, par exemple :
//
//	<minimax:tool_call>
//	  <invoke name="recalculate_emissions">
//	    <parameter name="overrides">{"port_drayage.ev_pct": 100}</parameter>
//	    <parameter name="scenario_name">100% EV Drayage</parameter>
//	  </invoke>
//	</minimax:tool_call>

var (
	toolCallRe = regexp.MustCompile(`(?s)<minimax:tool_call>(.*?)</minimax:tool_call>`)
	invokeRe   = regexp.MustCompile(`<invoke\s+name="([^"]+)"`)
	paramRe    = regexp.MustCompile(`(?s)<parameter\s+name="([^"]+)">(.*?)</parameter>`)
)

// ParseInlineInvocations balaie le texte du modèle et retourne les
// invocations trouvées, éventuellement aucune. Chaque valeur de paramètre
// est d'abord tentée comme JSON pour que nombres, booléens et objets
// survivent ; sinon elle reste une chaîne brute. Jamais d'erreur : une
// valeur imparsable est conservée telle quelle.
func ParseInlineInvocations(content string) []Invocation {
	var invocations []Invocation

	for _, block := range toolCallRe.FindAllStringSubmatch(content, -1) {
		nameMatch := invokeRe.FindStringSubmatch(block[1])
		if nameMatch == nil {
			continue
		}

		args := map[string]any{}
		for _, pm := range paramRe.FindAllStringSubmatch(block[1], -1) {
			args[pm[1]] = coerceValue(pm[2])
		}

		invocations = append(invocations, Invocation{
			Name:      nameMatch[1],
			Arguments: args,
		})
	}

	return invocations
}

func coerceValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	return v
}
