package proxy

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/imamik/dapphost/internal/config"
)

// siteTemplate renders one server block from the route table. Routes are
// rendered in table order, so identical inputs produce identical bytes.
const siteTemplate = `# Managed by dapphost. Do not edit; re-provisioning regenerates this file.
server {
    listen 80;
    listen [::]:80;
    server_name {{ .Domain }};
{{ range .Routes }}
    location {{ .PathPrefix }} {
{{- if .Static }}
        default_type text/plain;
        return 200 "{{ .Static }}";
{{- else }}
{{- if .CORS }}
        if ($request_method = OPTIONS) {
            add_header Access-Control-Allow-Origin "*";
            add_header Access-Control-Allow-Methods "GET, POST, OPTIONS";
            add_header Access-Control-Allow-Headers "Content-Type, Authorization";
            return 204;
        }
        add_header Access-Control-Allow-Origin "*" always;
{{- end }}
{{- range .ExtraHeaders }}
        add_header {{ .Name }} "{{ .Value }}";
{{- end }}
        proxy_pass http://{{ .Upstream }};
{{- if .KeepAlive }}
        proxy_http_version 1.1;
        proxy_set_header Connection "";
{{- end }}
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
{{- end }}
    }
{{ end -}}
}
`

var siteTmpl = template.Must(template.New("site").Parse(siteTemplate))

// Synthesize renders the proxy configuration for the domain from the route
// table. It refuses to render a route pointing at the storage control API,
// which must never be reachable through the proxy.
func Synthesize(domain string, routes []Route) ([]byte, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	apiSuffix := fmt.Sprintf(":%d", config.StorageAPIPort)
	for _, r := range routes {
		if r.Upstream == "" && r.Static == "" {
			return nil, fmt.Errorf("route %s has neither upstream nor static response", r.PathPrefix)
		}
		if strings.HasSuffix(r.Upstream, apiSuffix) {
			return nil, fmt.Errorf("route %s targets the storage control API port %d, which must stay loopback-only", r.PathPrefix, config.StorageAPIPort)
		}
	}

	var buf bytes.Buffer
	data := struct {
		Domain string
		Routes []Route
	}{Domain: domain, Routes: routes}

	if err := siteTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering proxy configuration: %w", err)
	}
	return buf.Bytes(), nil
}
