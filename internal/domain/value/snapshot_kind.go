package value

// SnapshotKind вид снимка состояния сервера. Для каждого вида хранится
// ровно один последний снимок.
type SnapshotKind string

const (
	KindAuction    SnapshotKind = "state"
	KindBalances   SnapshotKind = "balances"
	KindDeals      SnapshotKind = "deals"
	KindGame       SnapshotKind = "game"
	KindRound      SnapshotKind = "round"
	KindUser       SnapshotKind = "user"
	KindStatistics SnapshotKind = "statistics"
)

func (k SnapshotKind) String() string {
	return string(k)
}
