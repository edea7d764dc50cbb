package types

// Stack is a curated bundle of agents for one technology combination,
// e.g. "Next.js + Postgres". Catalog content is static configuration;
// stacks are never created or mutated at runtime.
type Stack struct {
	ID           string   `json:"id" mapstructure:"id"`
	Slug         string   `json:"slug" mapstructure:"slug"`
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description" mapstructure:"description"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
	AgentIDs     []string `json:"agent_ids" mapstructure:"agent_ids"`
	Premium      bool     `json:"premium" mapstructure:"premium"`
	// ProviderProductID is the per-stack SKU at the payment provider,
	// empty when the stack is only sold as part of full access.
	ProviderProductID string `json:"-" mapstructure:"provider_product_id"`
}

// Agent is a single prompt configuration. Premium agents keep their prompt
// body server-side until the caller is entitled.
type Agent struct {
	ID          string `json:"id" mapstructure:"id"`
	Slug        string `json:"slug" mapstructure:"slug"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Category    string `json:"category" mapstructure:"category"`
	Premium     bool   `json:"premium" mapstructure:"premium"`
	Prompt      string `json:"prompt,omitempty" mapstructure:"prompt"`
}
