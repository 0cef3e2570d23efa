package provisioning

import "fmt"

// basePackages is the package baseline every later step relies on.
// python3-certbot-nginx lets the CA client rewrite the proxy config for
// HTTPS during issuance.
var basePackages = []string{
	"nginx",
	"certbot",
	"python3-certbot-nginx",
	"ufw",
	"curl",
	"git",
	"jq",
	"build-essential",
}

// packagesStep installs the operating system package baseline.
type packagesStep struct{}

func (s *packagesStep) Name() string { return "packages" }

func (s *packagesStep) Satisfied(ctx *Context) (bool, error) {
	for _, pkg := range basePackages {
		if !ctx.Packages.Installed(ctx, pkg) {
			return false, nil
		}
	}
	return true, nil
}

func (s *packagesStep) Run(ctx *Context) error {
	var missing []string
	for _, pkg := range basePackages {
		if ctx.Packages.Installed(ctx, pkg) {
			LogResourceExists(ctx.Observer, s.Name(), "package", pkg)
			continue
		}
		missing = append(missing, pkg)
	}

	if err := ctx.Packages.Install(ctx, missing...); err != nil {
		return err
	}

	for _, pkg := range missing {
		if !ctx.Packages.Installed(ctx, pkg) {
			return fmt.Errorf("package %s still missing after install", pkg)
		}
		LogResourceCreated(ctx.Observer, s.Name(), "package", pkg)
	}
	return nil
}
