package sign

import (
	"fmt"

	"github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/sign"
)

// CheckPipe verifies the configured signing identity exists in the local
// trust store before any downstream work starts.
type CheckPipe struct{}

func (CheckPipe) String() string { return "checking signing identity" }

func (CheckPipe) Run(ctx *context.Context) error {
	identity := ctx.Config.Sign.Identity

	if err := sign.CheckIdentityInKeychain(ctx.StdCtx, ctx.Tools, identity); err != nil {
		return fmt.Errorf("missing signing identity: %w", err)
	}

	ctx.Logger.Debugf("Signing identity available: %s", identity)
	return nil
}
