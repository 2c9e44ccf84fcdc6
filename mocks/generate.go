package mocks

//go:generate mockgen -destination=./mock_file_provider.go -package=mocks github.com/rxtech-lab/argo-trading-halt/internal/datasource FileProvider
//go:generate mockgen -destination=./mock_event_store.go -package=mocks github.com/rxtech-lab/argo-trading-halt/internal/feed EventStore
//go:generate mockgen -destination=./mock_identifier_resolver.go -package=mocks github.com/rxtech-lab/argo-trading-halt/internal/processing IdentifierResolver
