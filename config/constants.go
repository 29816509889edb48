package config

const (
	NetworkMainnet  = "mainnet"
	NetworkTestnet  = "testnet"
	NetworkStagenet = "stagenet"
)

// DefaultBlackballDirName is the shared ring database directory under the home directory.
const DefaultBlackballDirName = ".shared-ringdb"
