package processing

import (
	"coc_cwl_bot/internal/coc"
)

// Compile-time interface compliance checks
// These will cause compilation errors if the types don't implement the interfaces

var (
	_ CocClientInterface   = (*coc.Client)(nil)
	_ CocClientInterface   = (*TrackedCocClient)(nil)
	_ WarResolverInterface = (*WarResolver)(nil)
	_ WarFetcherInterface  = (*WarFetcher)(nil)
)
