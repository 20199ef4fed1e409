package indexing

const (
	// DefaultSection is used for documents sitting directly in the docs root
	DefaultSection = "General"

	// ReferenceFolder is the path segment holding one document per RPC method
	ReferenceFolder = "json-rpc-methods"

	// ListingToken appears in the filename of the all-methods listing page
	ListingToken = "rpcmethods"

	// ListingMarker is the heading that identifies the endpoint overview page
	ListingMarker = "## Mainnet ZK Compression API endpoints"

	// MinKeywordLength is the exclusive lower bound for keyword length
	MinKeywordLength = 2
)

// DomainTerms are added as keywords whenever they occur in a document body.
var DomainTerms = []string{
	"rpc",
	"method",
	"api",
	"endpoint",
	"compressed",
	"account",
	"token",
	"balance",
	"signature",
}
