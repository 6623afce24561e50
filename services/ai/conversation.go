package ai

import (
	"encoding/json"
	"fmt"

	"carbon-whatif/integrations/minimax"

	"github.com/google/uuid"
)

// Assemblage des séquences de messages dans la forme exacte attendue par
// l'API. Formatage pur, aucune logique métier.

func buildIntentMessages(scenario string) []minimax.Message {
	return []minimax.Message{
		{Role: "system", Content: simulateSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Model this scenario: %s", scenario)},
	}
}

func buildQAMessages(dataJSON, question string) []minimax.Message {
	return []minimax.Message{
		{Role: "system", Content: qaSystemPrompt(dataJSON)},
		{Role: "user", Content: question},
	}
}

// appendToolExchange rejoue l'appel choisi au tour 1 (message assistant
// avec l'écho tool_calls) puis injecte le résultat calculé comme message
// tool, pour demander la synthèse du tour 2. L'invocation est toujours
// reconstruite à neuf par requête : aucun état partagé entre scénarios.
func appendToolExchange(messages []minimax.Message, content string, inv minimax.Invocation, toolResult string) []minimax.Message {
	callID := inv.ID
	if callID == "" {
		callID = "call_" + uuid.NewString()[:8]
	}

	args, err := json.Marshal(inv.Arguments)
	if err != nil {
		// Les arguments sortent d'un décodage JSON, le ré-encodage ne peut
		// pas échouer avec un état interne bien formé.
		args = []byte("{}")
	}

	messages = append(messages, minimax.Message{
		Role:    "assistant",
		Content: content,
		ToolCalls: []minimax.ToolCall{
			{
				ID:   callID,
				Type: "function",
				Function: minimax.FunctionCall{
					Name:      inv.Name,
					Arguments: string(args),
				},
			},
		},
	})
	messages = append(messages, minimax.Message{
		Role:       "tool",
		ToolCallID: callID,
		Content:    toolResult,
	})
	return messages
}
