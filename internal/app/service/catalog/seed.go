package catalog

import "github.com/agentprompts/backend/pkg/types"

// defaultCatalog is the shipped content, used when config supplies none.
// Kept small here; production deployments provide the full catalog via the
// config file.
func defaultCatalog() ([]*types.Stack, []*types.Agent) {
	agents := []*types.Agent{
		{
			ID:          "agent_code_reviewer",
			Slug:        "code-reviewer",
			Name:        "Code Reviewer",
			Description: "Reviews pull requests for correctness, style, and hidden regressions.",
			Category:    "engineering",
		},
		{
			ID:          "agent_api_designer",
			Slug:        "api-designer",
			Name:        "API Designer",
			Description: "Designs REST and RPC surfaces with consistent naming and error shapes.",
			Category:    "engineering",
			Premium:     true,
			Prompt:      "You are an API design specialist. Given a feature description, produce...",
		},
		{
			ID:          "agent_schema_modeler",
			Slug:        "schema-modeler",
			Name:        "Schema Modeler",
			Description: "Turns domain descriptions into normalized Postgres schemas with migrations.",
			Category:    "data",
			Premium:     true,
			Prompt:      "You are a database schema modeler. For every entity in the brief, emit...",
		},
		{
			ID:          "agent_landing_copy",
			Slug:        "landing-copywriter",
			Name:        "Landing Copywriter",
			Description: "Writes conversion-focused landing page copy from a product one-liner.",
			Category:    "marketing",
		},
	}

	stacks := []*types.Stack{
		{
			ID:           "stack_next_postgres",
			Slug:         "nextjs-postgres",
			Name:         "Next.js + Postgres",
			Description:  "Full-stack web app agents: API design, schema modeling, and review.",
			Technologies: []string{"Next.js", "Postgres", "TypeScript"},
			AgentIDs:     []string{"agent_api_designer", "agent_schema_modeler", "agent_code_reviewer"},
			Premium:      true,
		},
		{
			ID:           "stack_launch",
			Slug:         "launch-kit",
			Name:         "Launch Kit",
			Description:  "Everything for shipping and announcing a v1.",
			Technologies: []string{"Any"},
			AgentIDs:     []string{"agent_landing_copy", "agent_code_reviewer"},
		},
	}

	return stacks, agents
}
