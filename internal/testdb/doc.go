// Package testdb provides helpers for tests that run against a real Postgres
// database.
//
// Tests call GetTestDBWithT to obtain a migrated connection and WithTx to run
// their body inside a transaction that is always rolled back:
//
//	func TestTaskStoreIntegration(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			tasks := postgres.NewPostgresTaskStore(tx, nil)
//			// ...
//		})
//	}
//
// Without DATABASE_URL (or TASKMGR_DATABASE_URL) these tests are skipped
// locally. In CI a missing URL fails the test instead, so a misconfigured
// pipeline cannot pass by skipping everything.
package testdb
