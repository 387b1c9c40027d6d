package memstore

import (
	"context"
	"log/slog"
	"slices"

	"github.com/rpggio/smmdesk/internal/domain/project"
	"github.com/rpggio/smmdesk/internal/repository"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	items *Collection[project.Project, int64]
}

// NewProjectRepository creates a project repository persisted under KeyProjects.
func NewProjectRepository(store Snapshots, logger *slog.Logger) *ProjectRepository {
	of := func(p *project.Project) int64 { return p.ID }
	return &ProjectRepository{
		items: NewCollection(KeyProjects, store, Identity[project.Project, int64]{
			Of:   of,
			Set:  func(p *project.Project, id int64) { p.ID = id },
			Next: SequentialID(of),
		},
			WithClone[project.Project, int64](cloneProject),
			WithLogger[project.Project, int64](logger),
		),
	}
}

func cloneProject(p project.Project) project.Project {
	p.OperatorIDs = slices.Clone(p.OperatorIDs)
	return p
}

// Load reads the snapshot, installing seed on first run.
func (r *ProjectRepository) Load(ctx context.Context, seed []project.Project) error {
	return r.items.Load(ctx, seed)
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	stored, err := r.items.Append(ctx, *p)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

func (r *ProjectRepository) Get(_ context.Context, id int64) (*project.Project, error) {
	p, ok := r.items.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	_, err := r.items.Update(ctx, p.ID, func(dst *project.Project) error {
		*dst = cloneProject(*p)
		return nil
	})
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.items.Delete(ctx, id)
}

func (r *ProjectRepository) List(_ context.Context) ([]project.Project, error) {
	return r.items.Filter(nil), nil
}

func (r *ProjectRepository) ListByClient(_ context.Context, clientID int64) ([]project.Project, error) {
	return r.items.Filter(ownedBy(clientID)), nil
}

func (r *ProjectRepository) ListByOperator(_ context.Context, operatorID int64) ([]project.Project, error) {
	return r.items.Filter(assigned(operatorID)), nil
}

func (r *ProjectRepository) CountByClient(_ context.Context, clientID int64) (int, error) {
	return r.items.Count(ownedBy(clientID)), nil
}

func (r *ProjectRepository) CountByOperator(_ context.Context, operatorID int64) (int, error) {
	return r.items.Count(assigned(operatorID)), nil
}

func ownedBy(clientID int64) func(project.Project) bool {
	return func(p project.Project) bool { return p.ClientID == clientID }
}

func assigned(operatorID int64) func(project.Project) bool {
	return func(p project.Project) bool { return p.HasOperator(operatorID) }
}
