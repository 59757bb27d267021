package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/mwops/mwops/adapters/store/memory"
	"github.com/mwops/mwops/domain/model"
	"github.com/mwops/mwops/internal/render"
	"github.com/mwops/mwops/internal/secrets"
)

// fakeHandle records cluster calls and serves canned inventory.
type fakeHandle struct {
	mu sync.Mutex

	namespaces []string
	created    []map[string]any
	deleted    []map[string]any
	createErr  error

	// existing marks "kind/name" keys that respond AlreadyExists.
	existing map[string]bool
	// absent marks "kind/name" keys that respond NotFound on delete.
	absent map[string]bool

	// customObjects is keyed "group/plural/namespace/name".
	customObjects map[string]map[string]any
	createdCustom []string

	// secrets is keyed "namespace/name".
	secrets  map[string]map[string][]byte
	services []model.ServiceInfo
	nodes    []model.NodeInfo

	servicesErr error
	customErr   error
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{
		existing:      map[string]bool{},
		absent:        map[string]bool{},
		customObjects: map[string]map[string]any{},
		secrets:       map[string]map[string][]byte{},
	}
}

func docKey(doc map[string]any) string {
	kind, _ := doc["kind"].(string)
	md, _ := doc["metadata"].(map[string]any)
	name, _ := md["name"].(string)
	return kind + "/" + name
}

func customKey(group, plural, namespace, name string) string {
	return fmt.Sprintf("%s/%s/%s/%s", group, plural, namespace, name)
}

func notFound(resource, name string) error {
	return apierrors.NewNotFound(schema.GroupResource{Resource: resource}, name)
}

func (h *fakeHandle) EnsureNamespace(_ context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.namespaces = append(h.namespaces, name)
	return nil
}

func (h *fakeHandle) CreateDocument(_ context.Context, doc map[string]any, _ string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.createErr != nil {
		return false, h.createErr
	}
	if h.existing[docKey(doc)] {
		return false, nil
	}
	h.existing[docKey(doc)] = true
	h.created = append(h.created, doc)
	return true, nil
}

func (h *fakeHandle) DeleteDocument(_ context.Context, doc map[string]any, _ string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.absent[docKey(doc)] {
		return false, nil
	}
	h.deleted = append(h.deleted, doc)
	return true, nil
}

func (h *fakeHandle) ListServices(_ context.Context, _ string) ([]model.ServiceInfo, error) {
	if h.servicesErr != nil {
		return nil, h.servicesErr
	}
	return h.services, nil
}

func (h *fakeHandle) ListNodes(_ context.Context) ([]model.NodeInfo, error) {
	return h.nodes, nil
}

func (h *fakeHandle) ReadSecret(_ context.Context, namespace, name string) (map[string][]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.secrets[namespace+"/"+name]
	if !ok {
		return nil, notFound("secrets", name)
	}
	return data, nil
}

func (h *fakeHandle) CreateCustomObject(_ context.Context, group, _, namespace, plural string, body map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	md, _ := body["metadata"].(map[string]any)
	name, _ := md["name"].(string)
	key := customKey(group, plural, namespace, name)
	h.customObjects[key] = body
	h.createdCustom = append(h.createdCustom, key)
	return nil
}

func (h *fakeHandle) GetCustomObject(_ context.Context, group, _, namespace, plural, name string) (map[string]any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.customErr != nil {
		return nil, h.customErr
	}
	obj, ok := h.customObjects[customKey(group, plural, namespace, name)]
	if !ok {
		return nil, notFound(plural, name)
	}
	return obj, nil
}

var _ model.ClusterHandle = (*fakeHandle)(nil)

// fakeGateway hands out one fake handle and remembers the kubeconfig it
// was resolved with.
type fakeGateway struct {
	handle     *fakeHandle
	resolveErr error

	mu          sync.Mutex
	kubeconfigs [][]byte
}

func (g *fakeGateway) Resolve(_ context.Context, kubeconfig []byte) (model.ClusterHandle, error) {
	if g.resolveErr != nil {
		return nil, g.resolveErr
	}
	g.mu.Lock()
	g.kubeconfigs = append(g.kubeconfigs, kubeconfig)
	g.mu.Unlock()
	return g.handle, nil
}

var _ model.ClusterGateway = (*fakeGateway)(nil)

// harness bundles a fully wired UseCase with seeded records.
type harness struct {
	uc      *UseCase
	handle  *fakeHandle
	gateway *fakeGateway
	repos   *Repos

	project  *model.Project
	cluster  *model.Cluster
	platform *model.PostgresPlatform
}

const testTemplate = `apiVersion: postgresql.cnpg.io/v1
kind: Cluster
metadata:
  name: {{ .Values.name }}
spec:
  instances: {{ .Values.instances }}
  storage:
    size: {{ .Values.storage_size }}
`

const testServiceTemplate = `apiVersion: v1
kind: Service
metadata:
  name: {{ .Values.name }}-rw
spec:
  type: NodePort
`

// newHarness seeds a project, a remote cluster, and one platform, and
// wires a UseCase against a fake gateway. templates maps file names to
// contents under the postgres bundle; nil gets a default two-file bundle.
func newHarness(t *testing.T, templates map[string]string) *harness {
	t.Helper()

	root := t.TempDir()
	bundle := filepath.Join(root, model.PlatformKindPostgres)
	if err := os.MkdirAll(bundle, 0o755); err != nil {
		t.Fatalf("creating bundle dir: %v", err)
	}
	if templates == nil {
		templates = map[string]string{
			"00-cluster.yaml": testTemplate,
			"10-service.yaml": testServiceTemplate,
		}
	}
	for name, content := range templates {
		if err := os.WriteFile(filepath.Join(bundle, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing template %q: %v", name, err)
		}
	}

	cipher, err := secrets.NewCipher("harness-test-key")
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	repos := &Repos{
		Project:   memory.NewInMemoryProjectRepository(),
		Cluster:   memory.NewInMemoryClusterRepository(),
		S3Storage: memory.NewInMemoryS3StorageRepository(),
		Platform:  memory.NewInMemoryPlatformRepository(),
		State:     memory.NewInMemoryPlatformStateRepository(),
	}
	handle := newFakeHandle()
	gateway := &fakeGateway{handle: handle}

	uc, err := New(&Options{
		Repos:    repos,
		Gateway:  gateway,
		Renderer: render.NewRenderer(root),
		Cipher:   cipher,
		Now:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	proj := &model.Project{Name: "proj-a", Title: "Project A"}
	if err := repos.Project.Create(ctx, proj); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	clus := &model.Cluster{Name: "remote-1", Type: model.ClusterTypeRemote, Kubeconfig: "apiVersion: v1\nkind: Config\n"}
	if err := repos.Cluster.Create(ctx, clus); err != nil {
		t.Fatalf("seeding cluster: %v", err)
	}
	p := &model.PostgresPlatform{
		Name:        "pg1",
		ProjectID:   proj.ID,
		ClusterID:   clus.ID,
		Instances:   3,
		StorageSize: "1Gi",
		Image:       "ghcr.io/cloudnative-pg/postgresql:18",
	}
	if err := repos.Platform.Create(ctx, p); err != nil {
		t.Fatalf("seeding platform: %v", err)
	}

	return &harness{
		uc: uc, handle: handle, gateway: gateway, repos: repos,
		project: proj, cluster: clus, platform: p,
	}
}

// seedCNPGCluster installs a CNPG Cluster object reporting the given phase.
func (h *harness) seedCNPGCluster(phase string, instances, ready int64) {
	h.handle.customObjects[customKey(cnpgGroup, cnpgClustersPlural, h.project.Name, h.platform.Name)] = map[string]any{
		"apiVersion": cnpgGroup + "/" + cnpgVersion,
		"kind":       "Cluster",
		"metadata":   map[string]any{"name": h.platform.Name},
		"status": map[string]any{
			"phase":          phase,
			"instances":      instances,
			"readyInstances": ready,
		},
	}
}

func (h *harness) loadState(t *testing.T) *model.PlatformState {
	t.Helper()
	state, err := h.repos.State.Load(context.Background(), h.platform.ID)
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	return state
}
