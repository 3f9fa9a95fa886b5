// Package contract ties the registry together: one Contract instance owns
// the series registry, the ownership ledger, the fee schedule, and the
// storage-deposit accounting, and exposes the external entry points. Every
// entry point is one atomic call: it validates, computes its storage growth,
// charges the attached deposit, and only then commits and emits events, so
// a failed call leaves no partial state behind.
package contract

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/seriesorg/libseries-go/config"
	"github.com/seriesorg/libseries-go/deposit"
	"github.com/seriesorg/libseries-go/event"
	"github.com/seriesorg/libseries-go/fee"
	"github.com/seriesorg/libseries-go/ownership"
	"github.com/seriesorg/libseries-go/series"
	"github.com/seriesorg/libseries-go/token"
)

// Call describes one external call: who is calling and how much value they
// attached.
type Call struct {
	Caller  token.AccountID
	Deposit token.Balance
}

// Options carries the collaborators of a Contract. Series, Owners, Pending,
// State, and Bank are required; Sink defaults to a logrus sink and Clock to
// the system clock.
type Options struct {
	Series  series.Store
	Owners  ownership.Store
	Pending PendingStore
	State   StateStore
	Bank    Bank
	Sink    event.Sink
	Clock   Clock
}

// Contract is the registry instance.
type Contract struct {
	mu sync.Mutex

	cfg    config.Config
	state  *State
	states StateStore

	series  series.Store
	owners  ownership.Store
	pending PendingStore

	bank   Bank
	sink   event.Sink
	clock  Clock
	ledger *deposit.Ledger

	maxPrice token.Balance // zero means uncapped

	db *bbolt.DB // set when the contract owns the database
}

// New builds a Contract from a validated configuration and its
// collaborators. On first use the singleton state is initialized from the
// configuration; afterwards the persisted state wins and the configuration
// only supplies pricing limits.
func New(cfg config.Config, opts Options) (*Contract, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if opts.Series == nil || opts.Owners == nil || opts.Pending == nil || opts.State == nil || opts.Bank == nil {
		return nil, fmt.Errorf("contract: missing collaborator")
	}
	if opts.Sink == nil {
		opts.Sink = event.NewLogSink(nil)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	byteCost, err := config.ParseBalanceField(cfg.StorageByteCost)
	if err != nil {
		return nil, err
	}
	maxPrice, err := config.ParseBalanceField(cfg.MaxPrice)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		cfg:      cfg,
		states:   opts.State,
		series:   opts.Series,
		owners:   opts.Owners,
		pending:  opts.Pending,
		bank:     opts.Bank,
		sink:     opts.Sink,
		clock:    opts.Clock,
		ledger:   deposit.NewLedger(byteCost),
		maxPrice: maxPrice,
	}

	state, err := opts.State.Load()
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &State{
			OwnerID:    token.AccountID(cfg.Owner),
			TreasuryID: token.AccountID(cfg.Treasury),
			Meta: Metadata{
				Spec:    MetadataSpec,
				Name:    cfg.ContractName,
				Symbol:  cfg.ContractSymbol,
				BaseURI: cfg.BaseURI,
			},
			Fee: *fee.NewSchedule(cfg.DefaultFeeBps),
		}
		if err := opts.State.Save(state); err != nil {
			return nil, err
		}
	}
	c.state = state
	return c, nil
}

// Open builds a Contract backed by a single bbolt database file under the
// configured data directory.
func Open(cfg config.Config, bank Bank, sink event.Sink) (*Contract, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	path := filepath.Join(cfg.DataDir, "registry.db")
	seriesStore, err := series.OpenBoltStore(path)
	if err != nil {
		return nil, err
	}
	db := seriesStore.DB()

	ownerStore, err := ownership.NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	pendingStore, err := NewBoltPendingStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	stateStore, err := NewBoltStateStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c, err := New(cfg, Options{
		Series:  seriesStore,
		Owners:  ownerStore,
		Pending: pendingStore,
		State:   stateStore,
		Bank:    bank,
		Sink:    sink,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.db = db
	return c, nil
}

// Close releases the database when the contract owns it.
func (c *Contract) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// requireIntent enforces the one-unit proof-of-intent deposit on
// authorization-sensitive operations.
func requireIntent(call Call) error {
	if !call.Deposit.Equals(token.Bal(1)) {
		return ErrIntentDepositRequired
	}
	return nil
}

// nowMillis renders the clock as a millisecond timestamp string, the format
// used for issued-at metadata.
func (c *Contract) nowMillis() string {
	return strconv.FormatInt(c.clock.Now().UnixMilli(), 10)
}

// resolveFee promotes a due pending fee change and returns the active fee.
// The promoted schedule is persisted so restarts observe the same fee.
func (c *Contract) resolveFee() (uint32, error) {
	before := c.state.Fee.Pending
	bps := c.state.Fee.Resolve(c.clock.Now())
	if before != nil && c.state.Fee.Pending == nil {
		if err := c.states.Save(c.state); err != nil {
			return 0, err
		}
	}
	return bps, nil
}

// storageRefund charges the attached deposit for grown bytes after spent has
// already been taken from it, and returns the refund due. The caller pays
// the refund out only after its writes have committed.
func (c *Contract) storageRefund(call Call, spent token.Balance, grown uint64) (token.Balance, error) {
	return c.ledger.Charge(call.Deposit, spent, grown)
}

// requireOwner restricts an operation to the contract owner.
func (c *Contract) requireOwner(call Call) error {
	if call.Caller != c.state.OwnerID {
		return fmt.Errorf("%w: caller %s", ErrOwnerOnly, call.Caller)
	}
	return nil
}

// getSeries loads a series or fails with series.ErrSeriesNotFound.
func (c *Contract) getSeries(id token.SeriesID) (*series.Series, error) {
	return c.series.Get(id)
}

// requireCreator restricts an operation to the series creator.
func requireCreator(call Call, s *series.Series) error {
	if call.Caller != s.CreatorID {
		return fmt.Errorf("%w: caller %s, creator %s", ErrNotCreator, call.Caller, s.CreatorID)
	}
	return nil
}
