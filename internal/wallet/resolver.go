// Package wallet derives the Ethos Everywhere wallet address from the
// accounts an identity provider has linked to a session.
package wallet

// AccountTypeCrossApp tags a linked account that represents a wallet
// embedded in a separate host application.
const AccountTypeCrossApp = "cross_app"

// EmbeddedWallet is a wallet held by a linked account.
type EmbeddedWallet struct {
	Address string `json:"address"`
}

// LinkedAccount is an external account linked to the session's user.
type LinkedAccount struct {
	Type            string           `json:"type"`
	EmbeddedWallets []EmbeddedWallet `json:"embeddedWallets,omitempty"`
}

// IsCrossApp reports whether the account is a cross-app linked account.
func (a LinkedAccount) IsCrossApp() bool {
	return a.Type == AccountTypeCrossApp
}

// Resolve returns the first embedded wallet address of the first cross-app
// account. Only that first cross-app account is considered; if it carries no
// wallets the result is absent.
func Resolve(accounts []LinkedAccount) (string, bool) {
	for _, acct := range accounts {
		if !acct.IsCrossApp() {
			continue
		}
		if len(acct.EmbeddedWallets) == 0 {
			return "", false
		}
		return acct.EmbeddedWallets[0].Address, true
	}
	return "", false
}
