package remoteaction

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

const defaultDeployDir = "/opt/torrust"

// InternalRunningServicesValidator confirms the Docker Compose stack
// is up from inside the instance, via SSH.
type InternalRunningServicesValidator struct {
	SSH       sshtransport.Client
	DeployDir string
}

func (v *InternalRunningServicesValidator) Name() string { return "running-services-validation-internal" }

func (v *InternalRunningServicesValidator) Execute(ctx context.Context, ip string) error {
	deployDir := v.DeployDir
	if deployDir == "" {
		deployDir = defaultDeployDir
	}

	out, err := v.SSH.Execute(fmt.Sprintf("cd %s && docker compose ps", deployDir))
	if err != nil {
		return &RemoteActionError{Action: v.Name(), Kind: KindSSHCommandFailed, Detail: "docker compose ps", Cause: err}
	}
	if strings.Contains(out, "Exit") || strings.Contains(out, "exited") {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: "one or more services are not running: " + strings.TrimSpace(out)}
	}

	return nil
}

// ExternalRunningServicesValidator confirms the tracker's HTTP
// endpoints are reachable from outside the instance: a superset of
// the internal check, since success here also proves the firewall
// allows the traffic. The tracker API endpoint is required; HTTP
// tracker endpoints are best-effort, since a deployment may run none.
type ExternalRunningServicesValidator struct {
	TrackerAPIPort   int
	HTTPTrackerPorts []int
	HTTPClient       *http.Client

	// Domain, when set to a ".local" name, switches the health checks
	// to HTTPS against that hostname instead of plain HTTP against the
	// raw instance IP. The hostname is resolved locally (no DNS) to the
	// address below and its self-signed certificate is accepted.
	Domain *valueobject.DomainName

	// LocalIP overrides the address a .local Domain resolves to. When
	// empty, the instance IP passed to Execute is used.
	LocalIP string
}

func (v *ExternalRunningServicesValidator) Name() string { return "running-services-validation-external" }

func (v *ExternalRunningServicesValidator) target(ip string) (scheme, host string) {
	if v.Domain != nil && v.Domain.IsLocal() {
		return "https", v.Domain.String()
	}
	return "http", ip
}

func (v *ExternalRunningServicesValidator) httpClient(ip string) *http.Client {
	if v.HTTPClient != nil {
		return v.HTTPClient
	}
	resolved := v.LocalIP
	if resolved == "" {
		resolved = ip
	}
	return newLocalDomainClient(resolved)
}

func (v *ExternalRunningServicesValidator) Execute(ctx context.Context, ip string) error {
	client := v.httpClient(ip)
	scheme, host := v.target(ip)

	if err := checkHealthEndpoint(ctx, client, scheme, host, v.TrackerAPIPort); err != nil {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: fmt.Sprintf("tracker API health check failed on port %d", v.TrackerAPIPort), Cause: err}
	}

	// HTTP tracker checks are best-effort: a tracker deployment may run
	// zero HTTP trackers, and a health endpoint may be absent even when
	// the tracker itself is healthy.
	for _, port := range v.HTTPTrackerPorts {
		_ = checkHealthEndpoint(ctx, client, scheme, host, port)
	}

	return nil
}

func checkHealthEndpoint(ctx context.Context, client *http.Client, scheme, host string, port int) error {
	url := fmt.Sprintf("%s://%s:%d/api/health_check", scheme, host, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// newLocalDomainClient builds an http.Client whose DialContext resolves
// any ".local" host to resolvedIP and whose TLS config skips
// verification, gated to ".local" hosts only — instances in this
// deployer never have a real DNS name or a CA-signed certificate.
func newLocalDomainClient(resolvedIP string) *http.Client {
	dialer := &net.Dialer{Timeout: 5 * time.Second}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err == nil && resolvedIP != "" && strings.HasSuffix(host, ".local") {
				addr = net.JoinHostPort(resolvedIP, port)
			}
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true, // only ever dialed against .local hosts
		},
	}

	return &http.Client{Transport: transport, Timeout: 10 * time.Second}
}
