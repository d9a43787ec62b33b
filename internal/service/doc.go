// Package service contains the application use cases for tasks and users.
//
// Services receive their stores, the database handle used for transactions,
// and collaborators such as the token signer through constructor injection.
// They depend on the store interfaces in internal/store, never on a concrete
// database implementation. Read-modify-write operations run inside
// store.RunInTransaction.
//
// Expected failures are reported with the store and domain sentinel errors
// (store.ErrTaskNotFound, store.ErrUsernameExists, domain.ErrValidation, ...)
// so the API layer can map them with errors.Is. Unexpected failures are
// wrapped in *ServiceError.
package service
