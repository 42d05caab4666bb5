package memory

import (
	"context"

	"rockspec-notes/internal/repository/contract"
	"rockspec-notes/internal/repository/unitofwork"
)

// Factory satisfies unitofwork.RepositoryFactory over the in-memory store.
// Transactions are no-ops: every repository call is atomic under the store
// lock, which matches the single-call atomicity the services rely on.
type Factory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return NewNoteRepository(u.store)
}
