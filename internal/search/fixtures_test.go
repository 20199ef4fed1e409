package search_test

import (
	"testing"

	"github.com/lightprotocol/light-mcp/internal/indexing"
	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixtureDocs = map[string]string{
	"json-rpc-methods/getcompressedaccount.md": `---
title: getCompressedAccount
---
# getCompressedAccount

Returns the compressed account with the given address or hash.

## Parameters

| name | type |
|---|---|
| address | string |

## Example

` + "```bash\ncurl -X POST https://mainnet.helius-rpc.com\n```\n",

	"json-rpc-methods/getcompressedtokenbalancesbyowner.md": `---
title: getCompressedTokenBalancesByOwner
---
Returns the balances of every compressed mint held by an owner.

## Parameters

- owner: base58 public key
`,

	"json-rpc-methods/README.md": "# JSON RPC reference\n\nOne page per endpoint.\n",

	"json-rpc-methods/rpcmethods.md": `---
title: RPC Methods
---
## Mainnet ZK Compression API endpoints

| method | description |
|---|---|
| getCompressedAccount | fetch one compressed account |
| getCompressedTokenBalancesByOwner | balances per mint |
`,

	"compressed-tokens/overview.md": `---
title: Compressed Tokens Overview
---
# Compressed Tokens

Compressed token accounts store balances without rent.

Transfers settle through the light system program.
`,

	"compressed-pdas/create-a-program.md": `---
title: Create a program with compressed PDAs
---
Programs derive compressed PDA addresses from seeds.

Each compressed account is hashed into a state tree.
`,

	"learn/core-concepts.md": `---
title: Core concepts
---
State trees hold compressed state.

Validity proofs verify inclusion.
`,

	"guides/client-guide.md": `---
title: Client guide
---
Set up the client.

For example, create an RPC connection:

` + "```ts\nconst rpc = createRpc();\n```\n",
}

func fixtureEntries(t *testing.T) []indexing.DocEntry {
	t.Helper()

	result := indexing.NewLoader(zerolog.Nop()).LoadTable(fixtureDocs)
	require.Empty(t, result.Skipped)
	require.Len(t, result.Entries, len(fixtureDocs))
	return result.Entries
}

func fixtureEngine(t *testing.T) *search.Engine {
	t.Helper()

	engine, err := search.Build(fixtureEntries(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}
