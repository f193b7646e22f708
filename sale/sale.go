// Package sale assembles the full phased-sale core: the role registry, the
// per-collection phase gates and metadata resolvers, the external coin, the
// payment vaults, both token ledgers, and the shared audit journal. The
// facade is what a host embeds; it adds structured logging around the
// mutating surface and otherwise delegates to the components, which remain
// directly reachable for reads and admin operations.
package sale

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-mintgate/classledger"
	"github.com/pflow-xyz/go-mintgate/coin"
	"github.com/pflow-xyz/go-mintgate/commit"
	"github.com/pflow-xyz/go-mintgate/gate"
	"github.com/pflow-xyz/go-mintgate/identity"
	"github.com/pflow-xyz/go-mintgate/journal"
	"github.com/pflow-xyz/go-mintgate/metadata"
	"github.com/pflow-xyz/go-mintgate/serialledger"
	"github.com/pflow-xyz/go-mintgate/vault"
)

// Receiving addresses the vaults use for coin settlements. Approvals for
// allowance-settled mints must name the class vault account as spender.
const (
	ClassVaultAccount  identity.Address = "vault:classes"
	SerialVaultAccount identity.Address = "vault:serials"
)

// Config assembles a sale. Owner is required; everything else has working
// defaults. The class collection launches paused and the serial collection
// live, matching the production deployments, unless the gate configs say
// otherwise.
type Config struct {
	Owner identity.Address

	Class  classledger.Config
	Serial serialledger.Config

	ClassGate  gate.Config
	SerialGate gate.Config

	ClassURIs  metadata.Config
	SerialURIs metadata.Config

	// Journal defaults to an in-memory store.
	Journal journal.Journal

	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Sale is the assembled ledger core.
type Sale struct {
	logger zerolog.Logger

	roles *identity.Registry
	coin  *coin.Ledger

	classGate  *gate.Gate
	serialGate *gate.Gate

	classVault  *vault.Vault
	serialVault *vault.Vault

	classes *classledger.Ledger
	serials *serialledger.Ledger

	log journal.Journal
}

// New wires a sale from cfg.
func New(cfg Config) *Sale {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Journal == nil {
		cfg.Journal = journal.NewMemory()
	}

	roles := identity.NewRegistry(cfg.Owner)
	classGate := gate.New(roles, cfg.ClassGate)
	serialGate := gate.New(roles, cfg.SerialGate)
	classVault := vault.New(roles, ClassVaultAccount)
	serialVault := vault.New(roles, SerialVaultAccount)
	sc := coin.New(roles)
	classMeta := metadata.New(roles, classGate, cfg.ClassURIs)
	serialMeta := metadata.New(roles, serialGate, cfg.SerialURIs)

	return &Sale{
		logger:      logger,
		roles:       roles,
		coin:        sc,
		classGate:   classGate,
		serialGate:  serialGate,
		classVault:  classVault,
		serialVault: serialVault,
		classes:     classledger.New(cfg.Class, roles, classGate, classVault, sc, classMeta, cfg.Journal),
		serials:     serialledger.New(cfg.Serial, roles, serialGate, serialVault, serialMeta, cfg.Journal),
		log:         cfg.Journal,
	}
}

// Component accessors. Reads and role or phase administration go straight
// to the components.

func (s *Sale) Roles() *identity.Registry     { return s.roles }
func (s *Sale) Coin() *coin.Ledger            { return s.coin }
func (s *Sale) ClassGate() *gate.Gate         { return s.classGate }
func (s *Sale) SerialGate() *gate.Gate        { return s.serialGate }
func (s *Sale) Classes() *classledger.Ledger  { return s.classes }
func (s *Sale) Serials() *serialledger.Ledger { return s.serials }

// Journal returns the shared audit log.
func (s *Sale) Journal() journal.Journal { return s.log }

// MintClass sells qty units of one class, settled in native currency.
func (s *Sale) MintClass(caller, to identity.Address, id, qty uint64, paid *uint256.Int) error {
	err := s.classes.Mint(caller, to, id, qty, paid)
	s.logger.Err(err).Str("op", "mint_class").Str("caller", string(caller)).
		Uint64("class", id).Uint64("qty", qty).Msg("class mint")
	return err
}

// MintClassWithCoin sells qty units of one class, settled via the caller's
// coin allowance toward the class vault account.
func (s *Sale) MintClassWithCoin(caller, to identity.Address, id, qty uint64) error {
	err := s.classes.MintWithCoin(caller, to, id, qty)
	s.logger.Err(err).Str("op", "mint_class_coin").Str("caller", string(caller)).
		Uint64("class", id).Uint64("qty", qty).Msg("class mint")
	return err
}

// MintClassBatch sells several classes in one call, settled in native
// currency.
func (s *Sale) MintClassBatch(caller, to identity.Address, ids, amounts []uint64, paid *uint256.Int) error {
	err := s.classes.MintBatch(caller, to, ids, amounts, paid)
	s.logger.Err(err).Str("op", "mint_class_batch").Str("caller", string(caller)).
		Uints64("classes", ids).Msg("class batch mint")
	return err
}

// MintClassBatchWithCoin sells several classes in one call, settled via
// the caller's coin allowance.
func (s *Sale) MintClassBatchWithCoin(caller, to identity.Address, ids, amounts []uint64) error {
	err := s.classes.MintBatchWithCoin(caller, to, ids, amounts)
	s.logger.Err(err).Str("op", "mint_class_batch_coin").Str("caller", string(caller)).
		Uints64("classes", ids).Msg("class batch mint")
	return err
}

// MintClassByMinter mints one class without gating or payment.
func (s *Sale) MintClassByMinter(caller, to identity.Address, id, qty uint64) error {
	err := s.classes.MintByMinter(caller, to, id, qty)
	s.logger.Err(err).Str("op", "mint_class_privileged").Str("caller", string(caller)).
		Uint64("class", id).Uint64("qty", qty).Msg("class mint")
	return err
}

// MintClassBatchByMinter mints several classes without gating or payment.
func (s *Sale) MintClassBatchByMinter(caller, to identity.Address, ids, amounts []uint64) error {
	err := s.classes.MintBatchByMinter(caller, to, ids, amounts)
	s.logger.Err(err).Str("op", "mint_class_batch_privileged").Str("caller", string(caller)).
		Uints64("classes", ids).Msg("class batch mint")
	return err
}

// BurnClass destroys amount units of one class from the caller's balance.
func (s *Sale) BurnClass(caller identity.Address, id, amount uint64) error {
	err := s.classes.Burn(caller, id, amount)
	s.logger.Err(err).Str("op", "burn_class").Str("caller", string(caller)).
		Uint64("class", id).Uint64("amount", amount).Msg("class burn")
	return err
}

// BurnClassBatch destroys several classes from the caller's balance.
func (s *Sale) BurnClassBatch(caller identity.Address, ids, amounts []uint64) error {
	err := s.classes.BurnBatch(caller, ids, amounts)
	s.logger.Err(err).Str("op", "burn_class_batch").Str("caller", string(caller)).
		Uints64("classes", ids).Msg("class batch burn")
	return err
}

// MintSerial sells qty sequential tokens to the caller, settled in native
// currency.
func (s *Sale) MintSerial(caller identity.Address, qty uint64, paid *uint256.Int) error {
	err := s.serials.Mint(caller, qty, paid)
	s.logger.Err(err).Str("op", "mint_serial").Str("caller", string(caller)).
		Uint64("qty", qty).Msg("serial mint")
	return err
}

// MintSerialByMinter mints qty sequential tokens to the caller without
// gating or payment.
func (s *Sale) MintSerialByMinter(caller identity.Address, qty uint64) error {
	err := s.serials.MintByMinter(caller, qty)
	s.logger.Err(err).Str("op", "mint_serial_privileged").Str("caller", string(caller)).
		Uint64("qty", qty).Msg("serial mint")
	return err
}

// MintSerialForAddress mints qty sequential tokens to an arbitrary
// recipient. Admin or owner only.
func (s *Sale) MintSerialForAddress(caller identity.Address, qty uint64, to identity.Address) error {
	err := s.serials.MintForAddress(caller, qty, to)
	s.logger.Err(err).Str("op", "mint_serial_for").Str("caller", string(caller)).
		Str("to", string(to)).Uint64("qty", qty).Msg("serial mint")
	return err
}

// BurnSerial retires one sequential token owned by the caller.
func (s *Sale) BurnSerial(caller identity.Address, id uint64) error {
	err := s.serials.Burn(caller, id)
	s.logger.Err(err).Str("op", "burn_serial").Str("caller", string(caller)).
		Uint64("token", id).Msg("serial burn")
	return err
}

// WithdrawClassVault releases the class collection's native balance to the
// owner and returns the released amount.
func (s *Sale) WithdrawClassVault(caller identity.Address) (*uint256.Int, error) {
	amount, err := s.classVault.Withdraw(caller)
	ev := s.logger.Err(err).Str("op", "withdraw_class").Str("caller", string(caller))
	if amount != nil {
		ev = ev.Str("amount", amount.String())
	}
	ev.Msg("vault withdraw")
	return amount, err
}

// WithdrawSerialVault releases the serial collection's native balance to
// the owner and returns the released amount.
func (s *Sale) WithdrawSerialVault(caller identity.Address) (*uint256.Int, error) {
	amount, err := s.serialVault.Withdraw(caller)
	ev := s.logger.Err(err).Str("op", "withdraw_serial").Str("caller", string(caller))
	if amount != nil {
		ev = ev.Str("amount", amount.String())
	}
	ev.Msg("vault withdraw")
	return amount, err
}

// ClassVaultBalance returns the accumulated native balance of the class
// collection.
func (s *Sale) ClassVaultBalance() *uint256.Int { return s.classVault.Balance() }

// SerialVaultBalance returns the accumulated native balance of the serial
// collection.
func (s *Sale) SerialVaultBalance() *uint256.Int { return s.serialVault.Balance() }

// SupplyCommitment returns the MiMC commitment over the current per-class
// supplies, suitable for publishing alongside a supply-cap proof.
func (s *Sale) SupplyCommitment() *big.Int {
	return commit.Supplies(s.classes.SupplySnapshot())
}
