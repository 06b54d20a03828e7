// Package coinledger provides the historical balance and net-worth
// reconstruction engine of a personal cryptocurrency accounting tool.
//
// Transactions arrive from many sources (exchanges, blockchain importers,
// manual entry) and are persisted into two independently ordered stores:
// legacy trades, timestamped in seconds, and generalized history events,
// timestamped in milliseconds. The engine merges both streams into a single
// chronological ledger, replays per-asset balance deltas, and combines the
// resulting balances with historical price lookups to answer questions like
// "what did I hold at time T" and "what was my net worth day by day".
//
// The core functionalities include:
//   - Chronological Merge: a streaming, paged merge of the trade and event
//     cursors that never loads either table fully into memory.
//   - Balance Replay: an incremental fold applying credit/debit rules per
//     item, halting deterministically at the first debit that would drive an
//     asset's balance negative. The halt is a value, not an error: it marks
//     the exact item where the recorded ledger became inconsistent.
//   - Price Resolution: batched nearest-timestamp lookups of cached
//     historical prices in the user's main currency, reporting per-asset
//     misses instead of failing the whole query.
//   - Aggregation: point-in-time balances, per-asset amount series, and
//     day-bucketed net worth over a time range.
//
// The storage collaborators (trade store, history-event store, price cache,
// user settings) are consumed through small interfaces; the store package
// implements them on PostgreSQL.
package coinledger
