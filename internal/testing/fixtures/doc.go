// Package fixtures provides league record factories for Statline tests.
//
// # Factory Pattern
//
// Create a factory over any record store, or a fresh in-memory one:
//
//	f := fixtures.New(store)
//	f := fixtures.NewMemory()
//
// # Creating Test Data
//
// Factory methods save one record and return the mapped model:
//
//	team := f.CreateTeam(t)
//	mgr := f.CreateManager(t, team)
//	game := f.CreateSchedule(t)
//	state := f.CreateGameState(t, game)
//	line := f.CreatePlayerGame(t, game)
//
// # Customization
//
// Use option functions for customization:
//
//	game := f.CreateSchedule(t, func(o *fixtures.ScheduleOpts) {
//		o.GameType = model.GameTypePlayoff
//	})
//
// # Identifiers
//
// Unset identifiers are drawn from a per-factory counter, so records
// created by one factory never collide on their natural key.
package fixtures
