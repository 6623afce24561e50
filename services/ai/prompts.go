package ai

import (
	"fmt"

	"carbon-whatif/integrations/minimax"
)

// Les prompts restent en anglais : les données du tableau de bord et les
// utilisateurs finaux (équipe Owala) le sont.

const simulateSystemPrompt = `You are a supply chain sustainability analyst for Owala Inc.
The user will describe a what-if scenario. You must call the recalculate_emissions tool with the appropriate parameter overrides to model the scenario.

Available override parameters (use dot notation):
- raw_materials.steel_factor: kg CO2e per kg steel (baseline: 1.83). Use ~1.2 for recycled steel, ~1.5 for low-carbon steel
- raw_materials.tritan_factor: kg CO2e per kg resin (baseline: 3.8). Use ~2.5 for bio-based alternatives
- raw_materials.silicone_factor: kg CO2e per kg silicone (baseline: 4.23)
- manufacturing.grid_factor: kg CO2e per kWh (baseline: 0.581 Zhejiang grid)
- manufacturing.renewable_pct: 0-100, % of factory electricity from on-site solar/wind (baseline: 0)
- ocean_freight.speed_mode: "slow" | "moderate" | "express" | "ultra_slow"
- ocean_freight.all_same_speed: true to apply speed_mode to ALL shipments
- port_drayage.ev_pct: 0-100, % of drayage trips using electric trucks (baseline: 14.3)
- warehousing.renewable_pct: 0-100, % of DC electricity from renewables (baseline: 0)
- warehousing.efficiency_gain_pct: 0-100, % overall energy reduction from efficiency upgrades
- distribution.ftl_shift_pct: 0-100, % of LTL shipments consolidated to FTL

Choose the overrides that best match the user's scenario. You can combine multiple overrides.
Always call the tool — never guess the numbers.`

const qaSystemPromptFmt = `You are a supply chain sustainability analyst for Owala Inc., a water bottle company.
You have access to comprehensive carbon footprint data for their FreeSip product line (Q3-Q4 2025, 90,000 units).

Here is the complete carbon footprint data:

%s

When answering questions:
- Always cite specific numbers from the data (kg CO2e, percentages, supplier names)
- Be concise but precise
- If asked about recommendations, ground them in the actual data
- If a question is outside the scope of this data, say so clearly
- Use plain language, not jargon — imagine presenting to a VP of Operations`

const recalcToolName = "recalculate_emissions"

func recalcTool() minimax.Tool {
	return minimax.Tool{
		Type: "function",
		Function: minimax.ToolSchema{
			Name:        recalcToolName,
			Description: "Recalculate supply chain carbon emissions with modified parameters to model a what-if scenario.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"overrides": map[string]any{
						"type":        "object",
						"description": "Key-value pairs of parameters to change. Use dot notation keys like 'ocean_freight.speed_mode' or 'warehousing.renewable_pct'. Values should be numbers or strings.",
					},
					"scenario_name": map[string]any{
						"type":        "string",
						"description": "Short descriptive name for this scenario, e.g. '100% EV Drayage' or 'Renewable Warehouse'",
					},
				},
				"required": []string{"overrides", "scenario_name"},
			},
		},
	}
}

func qaSystemPrompt(dataJSON string) string {
	return fmt.Sprintf(qaSystemPromptFmt, dataJSON)
}
