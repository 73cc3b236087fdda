// Package account ties a principal's stored credential binding to the
// per-surface aggregators. Every method resolves the binding once and builds
// fresh, request-scoped service clients from it; nothing is cached across
// requests.
package account

import (
	"context"

	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/awsclients"
	"github.com/cloudops-tools/cloudops/pkg/services/compute"
	"github.com/cloudops-tools/cloudops/pkg/services/cost"
	"github.com/cloudops-tools/cloudops/pkg/services/credentials"
	"github.com/cloudops-tools/cloudops/pkg/services/metrics"
	"github.com/cloudops-tools/cloudops/pkg/services/security"
	"github.com/cloudops-tools/cloudops/pkg/services/storage"
)

type Explorer interface {
	// Connect verifies the key pair against STS and stores the resulting
	// binding, replacing any previous one for the principal.
	Connect(ctx context.Context, principalID, accessKeyID, secretAccessKey, region string) (domain.AccountBinding, error)

	// Status reports the stored binding, if any. It never fails.
	Status(principalID string) (domain.AccountBinding, bool)

	// Disconnect removes the principal's binding. Removing an absent binding
	// is a no-op.
	Disconnect(principalID string)

	Compute(principalID string) (compute.Explorer, error)
	Storage(principalID string) (storage.Explorer, error)
	Metrics(principalID string) (metrics.Explorer, error)
	Cost(principalID string) (cost.Explorer, string, error)
	Security(principalID string) (security.Engine, error)
}

type explorer struct {
	store    credentials.Store
	verifier *credentials.Verifier
	factory  awsclients.Factory
}

func NewExplorer(store credentials.Store, verifier *credentials.Verifier, factory awsclients.Factory) Explorer {
	return &explorer{store: store, verifier: verifier, factory: factory}
}

func (e *explorer) Connect(ctx context.Context, principalID, accessKeyID, secretAccessKey, region string) (domain.AccountBinding, error) {
	binding, err := e.verifier.Verify(ctx, accessKeyID, secretAccessKey, region)
	if err != nil {
		return domain.AccountBinding{}, err
	}
	e.store.Put(principalID, binding)
	return binding, nil
}

func (e *explorer) Status(principalID string) (domain.AccountBinding, bool) {
	binding, err := e.store.Resolve(principalID)
	if err != nil {
		return domain.AccountBinding{}, false
	}
	return binding, true
}

func (e *explorer) Disconnect(principalID string) {
	e.store.Delete(principalID)
}

func (e *explorer) Compute(principalID string) (compute.Explorer, error) {
	clients, err := e.clients(principalID)
	if err != nil {
		return nil, err
	}
	return compute.NewExplorer(clients.EC2), nil
}

func (e *explorer) Storage(principalID string) (storage.Explorer, error) {
	clients, err := e.clients(principalID)
	if err != nil {
		return nil, err
	}
	return storage.NewExplorer(clients.S3), nil
}

func (e *explorer) Metrics(principalID string) (metrics.Explorer, error) {
	clients, err := e.clients(principalID)
	if err != nil {
		return nil, err
	}
	return metrics.NewExplorer(clients.CloudWatch), nil
}

// Cost also returns the bound account ID, which the budgets lookup needs.
func (e *explorer) Cost(principalID string) (cost.Explorer, string, error) {
	binding, err := e.store.Resolve(principalID)
	if err != nil {
		return nil, "", err
	}
	clients := e.factory(binding)
	return cost.NewExplorer(clients.CostExplorer, clients.Budgets), binding.AccountID, nil
}

func (e *explorer) Security(principalID string) (security.Engine, error) {
	clients, err := e.clients(principalID)
	if err != nil {
		return nil, err
	}
	return security.NewEngine(clients.S3, clients.EC2), nil
}

func (e *explorer) clients(principalID string) (*awsclients.ClientSet, error) {
	binding, err := e.store.Resolve(principalID)
	if err != nil {
		return nil, err
	}
	return e.factory(binding), nil
}
