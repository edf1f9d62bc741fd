package provider

import "fmt"

// Registry builds ContentProvider instances from a registration's category
// and connection config. Registering a new category is the only step a new
// integration needs beyond implementing ContentProvider.
type Registry struct {
	builders map[string]func(config map[string]string) (ContentProvider, error)
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(map[string]string) (ContentProvider, error))}

	r.Register("transcript", func(config map[string]string) (ContentProvider, error) {
		return NewTranscriptProvider(TranscriptConfig{
			BaseURL: config["base_url"],
			APIKey:  config["api_key"],
			Speaker: config["speaker"],
		})
	})
	r.Register("mailbox", func(config map[string]string) (ContentProvider, error) {
		return NewMailboxProvider(MailboxConfig{
			BaseURL: config["base_url"],
			APIKey:  config["api_key"],
			Folder:  config["folder"],
		})
	})

	return r
}

func (r *Registry) Register(category string, builder func(map[string]string) (ContentProvider, error)) {
	r.builders[category] = builder
}

// Build returns the provider for a category, or an error for unknown
// categories so the sync engine can record it on the registration.
func (r *Registry) Build(category string, config map[string]string) (ContentProvider, error) {
	builder, ok := r.builders[category]
	if !ok {
		return nil, fmt.Errorf("unknown provider category: %s", category)
	}
	return builder(config)
}
