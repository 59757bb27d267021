package platform

import (
	"context"
	"strings"

	cnpgv1 "github.com/cloudnative-pg/cloudnative-pg/api/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/logging"
)

const (
	cnpgGroup          = "postgresql.cnpg.io"
	cnpgVersion        = "v1"
	cnpgClustersPlural = "clusters"
	cnpgBackupsPlural  = "backups"

	argoGroup              = "argoproj.io"
	argoVersion            = "v1alpha1"
	argoApplicationsPlural = "applications"
	argoNamespace          = "argocd"

	appSecretSuffix = "-app"
	caSecretSuffix  = "-ca"
)

// PollInput identifies the platform to observe.
type PollInput struct {
	ID int64 `json:"id"`
}

// PollOutput contains the refreshed state.
type PollOutput struct {
	State *model.PlatformState `json:"state"`
}

// observation is the result of one cluster inspection. It is always
// produced; observation failures degrade into status=error.
type observation struct {
	Status  model.PlatformStatus
	Message string
	Extra   map[string]any
	Creds   map[string]string
}

// Poll reads the operator's status sources and refreshes the state row.
// Cluster failures never propagate: they set status=error with a short
// message. Only store failures return an error.
func (u *UseCase) Poll(ctx context.Context, in *PollInput) (*PollOutput, error) {
	if in == nil || in.ID == 0 {
		return nil, model.ErrPlatformNotFound
	}
	p, err := u.Repos.Platform.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	state, err := u.Repos.State.Load(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		// Active defaults to true before the first Apply records intent.
		state = &model.PlatformState{PlatformID: p.ID, Active: true}
	}

	namespace := u.resolveNamespace(ctx, p)
	obs := u.observe(ctx, p, namespace, state.Active)

	state.Status = obs.Status
	state.Message = obs.Message
	if state.Active || obs.Status == model.StatusOffline {
		if obs.Extra != nil {
			state.ExtraData = obs.Extra
		}
		state.LastHeartbeat = u.now().UTC()
		u.mergeCredentials(ctx, state, obs.Creds)
	}

	if err := u.Repos.State.Upsert(ctx, state); err != nil {
		return nil, err
	}
	return &PollOutput{State: state}, nil
}

// observe inspects the CNPG Cluster resource and surrounding inventory.
// Every failure path is absorbed into the returned observation.
func (u *UseCase) observe(ctx context.Context, p *model.PostgresPlatform, namespace string, active bool) *observation {
	logger := logging.FromContext(ctx)

	kubeconfig, err := u.resolveKubeconfig(ctx, p)
	if err != nil {
		return &observation{Status: model.StatusError, Message: shortError(err)}
	}
	handle, err := u.Gateway.Resolve(ctx, kubeconfig)
	if err != nil {
		return &observation{Status: model.StatusError, Message: shortError(err)}
	}

	obj, err := handle.GetCustomObject(ctx, cnpgGroup, cnpgVersion, namespace, cnpgClustersPlural, p.Name)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return &observation{Status: model.StatusError, Message: shortError(err)}
		}
		if !active {
			return &observation{Status: model.StatusOffline, Message: "Cluster is stopped"}
		}
		if _, aerr := handle.GetCustomObject(ctx, argoGroup, argoVersion, argoNamespace, argoApplicationsPlural, p.Name); aerr == nil {
			return &observation{Status: model.StatusPending, Message: "Provisioning resources"}
		}
		return &observation{Status: model.StatusError, Message: shortError(err)}
	}

	phase := nestedString(obj, "status", "phase")
	obs := &observation{}
	switch {
	case phase == cnpgv1.PhaseHealthy:
		obs.Status = model.StatusOnline
		obs.Message = phase
	case strings.Contains(phase, "Degraded"):
		obs.Status = model.StatusError
		obs.Message = phase
	case phase != "":
		obs.Status = model.StatusPending
		obs.Message = phase
	default:
		obs.Status = model.StatusPending
		obs.Message = "Waiting for operator status"
	}

	extra := map[string]any{"phase": phase}
	if v, ok := nestedInt(obj, "status", "instances"); ok {
		extra["instances"] = v
	}
	if v, ok := nestedInt(obj, "status", "readyInstances"); ok {
		extra["readyInstances"] = v
	}
	if services, err := handle.ListServices(ctx, namespace); err != nil {
		logger.Debug(ctx, "service inventory unavailable", "platform", p.Name, "error", err)
	} else if ports := nodePorts(services); len(ports) > 0 {
		extra["nodePorts"] = ports
	}
	if nodes, err := handle.ListNodes(ctx); err != nil {
		logger.Debug(ctx, "node inventory unavailable", "platform", p.Name, "error", err)
	} else if len(nodes) > 0 {
		inventory := make([]map[string]any, 0, len(nodes))
		for _, n := range nodes {
			inventory = append(inventory, map[string]any{
				"name": n.Name, "internalIP": n.InternalIP, "ready": n.Ready,
			})
		}
		extra["nodes"] = inventory
	}
	obs.Extra = extra

	obs.Creds = u.readCredentials(ctx, handle, namespace, p.Name)
	return obs
}

// readCredentials pulls the operator-generated application secret. The CA
// certificate falls back to the dedicated -ca secret when the app secret
// does not carry it. Failures yield a partial (or empty) map.
func (u *UseCase) readCredentials(ctx context.Context, handle model.ClusterHandle, namespace, name string) map[string]string {
	logger := logging.FromContext(ctx)
	data, err := handle.ReadSecret(ctx, namespace, name+appSecretSuffix)
	if err != nil {
		if !apierrors.IsNotFound(err) {
			logger.Debug(ctx, "app secret unavailable", "platform", name, "error", err)
		}
		return nil
	}
	creds := map[string]string{}
	for _, key := range []string{"username", "dbname", "password", "ca.crt"} {
		if v, ok := data[key]; ok && len(v) > 0 {
			creds[key] = string(v)
		}
	}
	if _, ok := creds["ca.crt"]; !ok {
		if caData, err := handle.ReadSecret(ctx, namespace, name+caSecretSuffix); err == nil {
			if v, ok := caData["ca.crt"]; ok && len(v) > 0 {
				creds["ca.crt"] = string(v)
			}
		}
	}
	return creds
}

// mergeCredentials stores observed credentials; keys absent from the
// secret keep their previous values. The password is stored encrypted.
func (u *UseCase) mergeCredentials(ctx context.Context, state *model.PlatformState, creds map[string]string) {
	if len(creds) == 0 {
		return
	}
	if v, ok := creds["username"]; ok {
		state.DBUser = v
	}
	if v, ok := creds["dbname"]; ok {
		state.DBName = v
	}
	if v, ok := creds["ca.crt"]; ok {
		state.DBCACert = v
	}
	if v, ok := creds["password"]; ok {
		if u.Cipher == nil {
			logging.FromContext(ctx).Warn(ctx, "no cipher configured, dropping observed password",
				"platform_id", state.PlatformID)
			return
		}
		enc, err := u.Cipher.Encrypt(v)
		if err != nil {
			logging.FromContext(ctx).Warn(ctx, "password encryption failed, keeping previous value",
				"platform_id", state.PlatformID, "error", err)
			return
		}
		state.DBPass = enc
	}
}

// nodePorts flattens exposed node ports keyed "service/port".
func nodePorts(services []model.ServiceInfo) map[string]any {
	out := map[string]any{}
	for _, svc := range services {
		for _, port := range svc.Ports {
			if port.NodePort == 0 {
				continue
			}
			key := svc.Name
			if port.Name != "" {
				key = svc.Name + "/" + port.Name
			}
			out[key] = port.NodePort
		}
	}
	return out
}

func shortError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func nestedString(m map[string]any, keys ...string) string {
	v, ok := nested(m, keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func nestedInt(m map[string]any, keys ...string) (int64, bool) {
	v, ok := nested(m, keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func nested(m map[string]any, keys ...string) (any, bool) {
	var cur any = m
	for _, k := range keys {
		cm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = cm[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
