// Package sqlite persists world snapshots (players, groups and membership)
// in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/world"
	"github.com/louisbranch/partybind/internal/world/memory"
	"github.com/louisbranch/partybind/internal/world/sqlite/migrations"
)

// Store reads and writes world snapshots.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite world store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutPlayer inserts or updates one character.
func (s *Store) PutPlayer(ctx context.Context, info memory.PlayerInfo) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if !info.GUID.IsPlayer() {
		return fmt.Errorf("player guid is required")
	}
	name := memory.NormalizeName(info.Name)
	if name == "" {
		return fmt.Errorf("player name is required")
	}
	info.Name = name
	return putPlayer(ctx, s.sqlDB, info)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putPlayer(ctx context.Context, db execer, info memory.PlayerInfo) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO players (guid, name, online, session, in_battleground)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(guid) DO UPDATE SET
		   name = excluded.name,
		   online = excluded.online,
		   session = excluded.session,
		   in_battleground = excluded.in_battleground`,
		int64(info.GUID), info.Name, info.Online, info.Session, info.InBattleground,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("put player %s", info.GUID), err)
	}
	return nil
}

// Load builds a world from the stored snapshot.
func (s *Store) Load(ctx context.Context) (*memory.World, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	w := memory.NewWorld()
	if err := s.loadPlayers(ctx, w); err != nil {
		return nil, err
	}
	states, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, state := range states {
		if _, err := w.RestoreGroup(state); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("restore group %s", state.GUID), err)
		}
	}
	return w, nil
}

func (s *Store) loadPlayers(ctx context.Context, w *memory.World) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT guid, name, online, session, in_battleground FROM players ORDER BY guid`)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "query players", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			guid int64
			info memory.PlayerInfo
		)
		if err := rows.Scan(&guid, &info.Name, &info.Online, &info.Session, &info.InBattleground); err != nil {
			return apperrors.Wrap(apperrors.CodeStorage, "scan player", err)
		}
		info.GUID = world.ObjectGuid(guid)
		if _, err := w.AddPlayer(info); err != nil {
			return apperrors.Wrap(apperrors.CodeStorage, "load player", err)
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "iterate players", err)
	}
	return nil
}

func (s *Store) loadGroups(ctx context.Context) ([]memory.GroupState, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT g.guid, g.leader_guid, g.is_raid, g.is_battleground,
		        m.member_guid, m.sub_group, m.assistant
		   FROM player_groups g
		   LEFT JOIN player_group_members m ON m.group_guid = g.guid
		  ORDER BY g.guid, m.slot`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "query groups", err)
	}
	defer rows.Close()

	var states []memory.GroupState
	for rows.Next() {
		var (
			guid, leader     int64
			raid, bg         bool
			member, subGroup sql.NullInt64
			assistant        sql.NullBool
		)
		if err := rows.Scan(&guid, &leader, &raid, &bg, &member, &subGroup, &assistant); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorage, "scan group", err)
		}
		if len(states) == 0 || states[len(states)-1].GUID != world.ObjectGuid(guid) {
			states = append(states, memory.GroupState{
				GUID:         world.ObjectGuid(guid),
				Leader:       world.ObjectGuid(leader),
				Raid:         raid,
				Battleground: bg,
			})
		}
		if !member.Valid {
			continue
		}
		state := &states[len(states)-1]
		state.Members = append(state.Members, memory.Slot{
			GUID:      world.ObjectGuid(member.Int64),
			SubGroup:  uint8(subGroup.Int64),
			Assistant: assistant.Bool,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "iterate groups", err)
	}
	return states, nil
}

// Save replaces the stored snapshot with w. Disbanded groups are dropped.
func (s *Store) Save(ctx context.Context, w *memory.World) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if w == nil {
		return fmt.Errorf("world is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "begin save", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_group_members`); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "clear members", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM player_groups`); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "clear groups", err)
	}
	for _, p := range w.Players() {
		if err := putPlayer(ctx, tx, memory.PlayerInfo{
			GUID:           p.GUID(),
			Name:           p.Name(),
			Online:         p.Online(),
			Session:        p.HasSession(),
			InBattleground: p.InBattleground(),
		}); err != nil {
			return err
		}
	}
	for _, g := range w.Groups() {
		state := g.State()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_groups (guid, leader_guid, is_raid, is_battleground) VALUES (?, ?, ?, ?)`,
			int64(state.GUID), int64(state.Leader), state.Raid, state.Battleground,
		); err != nil {
			return apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("insert group %s", state.GUID), err)
		}
		for slot, member := range state.Members {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO player_group_members (group_guid, member_guid, slot, sub_group, assistant)
				 VALUES (?, ?, ?, ?, ?)`,
				int64(state.GUID), int64(member.GUID), slot, int(member.SubGroup), member.Assistant,
			); err != nil {
				return apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("insert member %s", member.GUID), err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "commit save", err)
	}
	return nil
}
