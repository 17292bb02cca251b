// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/c8lab/c8sim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated via the exit opcode.
	Exited bool

	// Err is set if a fault occurred during execution. Faults are
	// terminal; the machine state is left as it was when the fault
	// was detected.
	Err error
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	display *Display
	keypad  *Keypad
	decoder *insts.Decoder
	quirks  Quirks

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	rand   func() byte
	logger *log.Logger

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithQuirks selects the quirks profile. The default is the modern
// profile.
func WithQuirks(quirks Quirks) EmulatorOption {
	return func(e *Emulator) {
		e.quirks = quirks
	}
}

// WithRandSource sets the byte source used by the RND instruction.
// Tests use this for deterministic draws.
func WithRandSource(src func() byte) EmulatorOption {
	return func(e *Emulator) {
		e.rand = src
	}
}

// WithRandSeed seeds the default random source, making RND
// reproducible across runs.
func WithRandSeed(seed int64) EmulatorOption {
	return func(e *Emulator) {
		rng := rand.New(rand.NewSource(seed))
		e.rand = func() byte {
			return byte(rng.Intn(256))
		}
	}
}

// WithLogger enables per-instruction trace logging at debug level.
func WithLogger(logger *log.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}
	regFile.Reset()
	memory := NewMemory()

	e := &Emulator{
		regFile:          regFile,
		memory:           memory,
		display:          &Display{},
		keypad:           &Keypad{},
		decoder:          insts.NewDecoder(),
		quirks:           ModernQuirks(),
		instructionCount: 0,
		maxInstructions:  0,
	}

	// Apply options first (may set quirks or the random source)
	for _, opt := range opts {
		opt(e)
	}

	if e.rand == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		e.rand = func() byte {
			return byte(rng.Intn(256))
		}
	}

	// Create execution units
	e.alu = NewALU(regFile, e.rand)
	e.lsu = NewLoadStoreUnit(regFile, memory)
	e.branchUnit = NewBranchUnit(regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Display returns the emulator's display.
func (e *Emulator) Display() *Display {
	return e.display
}

// Keypad returns the emulator's keypad.
func (e *Emulator) Keypad() *Keypad {
	return e.keypad
}

// Quirks returns the active quirks profile.
func (e *Emulator) Quirks() Quirks {
	return e.quirks
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// SoundActive reports whether the sound timer is running, i.e. the
// buzzer should be on.
func (e *Emulator) SoundActive() bool {
	return e.regFile.ST > 0
}

// LoadProgram copies a program image to the load address and points PC
// at it.
func (e *Emulator) LoadProgram(program []byte) error {
	if err := e.memory.LoadProgram(program); err != nil {
		return err
	}
	e.regFile.PC = LoadAddress
	return nil
}

// Reset restores the power-on state. The loaded program is cleared as
// well; callers reload before running again.
func (e *Emulator) Reset() {
	e.regFile.Reset()
	e.memory.Reset()
	e.display.Clear()
	e.keypad.Reset()
	e.instructionCount = 0
}

// TickTimers decrements the delay and sound timers by one step. The
// cycle driver calls this at 60 Hz regardless of instruction rate.
func (e *Emulator) TickTimers() {
	e.regFile.TickTimers()
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrInstructionLimit}
	}

	// 1. Fetch: read the big-endian word at PC, then advance past it.
	// Instructions that skip or branch adjust PC from there.
	pc := e.regFile.PC
	word := e.memory.ReadWord(pc)
	e.regFile.AdvancePC()

	// 2. Decode
	inst := e.decoder.Decode(word)

	if e.logger != nil {
		e.logger.Debug("execute",
			log.Uint16("pc", pc),
			log.String("inst", inst.String()),
		)
	}

	// 3. Execute
	result := e.execute(inst, pc)

	// Increment instruction count
	e.instructionCount++

	return result
}

// Run executes instructions until the program exits or a fault stops
// it. A clean exit returns nil. Programs that neither exit nor fault
// run forever unless an instruction limit is set.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Exited {
			return nil
		}
		if result.Err != nil {
			return result.Err
		}
	}
}

// execute dispatches a decoded instruction to its execution unit. PC
// has already advanced past the fetched word.
func (e *Emulator) execute(inst *insts.Instruction, pc uint16) StepResult {
	// Unknown words and SYS machine-code calls both fault: there is
	// no host machine code for 0nnn to jump into.
	if inst.Op == insts.OpUnknown || inst.Op == insts.OpSys {
		return StepResult{
			Err: &InvalidOpcodeError{Word: inst.Word, Addr: pc},
		}
	}

	rf := e.regFile

	switch inst.Op {
	case insts.OpClearScreen:
		e.display.Clear()
	case insts.OpReturn:
		if err := e.branchUnit.Return(); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpExit:
		return StepResult{Exited: true}
	case insts.OpJump:
		e.branchUnit.Jump(inst.NNN)
	case insts.OpCall:
		if err := e.branchUnit.Call(inst.NNN); err != nil {
			return StepResult{Err: err}
		}
	case insts.OpSkipEqImm:
		e.branchUnit.SkipIf(rf.V[inst.X] == inst.NN)
	case insts.OpSkipNeImm:
		e.branchUnit.SkipIf(rf.V[inst.X] != inst.NN)
	case insts.OpSkipEqReg:
		e.branchUnit.SkipIf(rf.V[inst.X] == rf.V[inst.Y])
	case insts.OpLoadImm:
		e.alu.LoadImm(inst.X, inst.NN)
	case insts.OpAddImm:
		e.alu.AddImm(inst.X, inst.NN)
	case insts.OpMove:
		e.alu.Move(inst.X, inst.Y)
	case insts.OpOr:
		e.alu.Or(inst.X, inst.Y, e.quirks)
	case insts.OpAnd:
		e.alu.And(inst.X, inst.Y, e.quirks)
	case insts.OpXor:
		e.alu.Xor(inst.X, inst.Y, e.quirks)
	case insts.OpAdd:
		e.alu.Add(inst.X, inst.Y)
	case insts.OpSub:
		e.alu.Sub(inst.X, inst.Y)
	case insts.OpShiftRight:
		e.alu.ShiftRight(inst.X, inst.Y, e.quirks)
	case insts.OpSubReverse:
		e.alu.SubReverse(inst.X, inst.Y)
	case insts.OpShiftLeft:
		e.alu.ShiftLeft(inst.X, inst.Y, e.quirks)
	case insts.OpSkipNeReg:
		e.branchUnit.SkipIf(rf.V[inst.X] != rf.V[inst.Y])
	case insts.OpLoadIndex:
		e.lsu.SetIndex(inst.NNN)
	case insts.OpJumpV0:
		e.branchUnit.JumpOffset(inst.X, inst.NNN, e.quirks)
	case insts.OpRandom:
		e.alu.Random(inst.X, inst.NN)
	case insts.OpDraw:
		e.executeDraw(inst)
	case insts.OpSkipKeyDown:
		e.branchUnit.SkipIf(e.keypad.Down(rf.V[inst.X] & 0x0F))
	case insts.OpSkipKeyUp:
		e.branchUnit.SkipIf(!e.keypad.Down(rf.V[inst.X] & 0x0F))
	case insts.OpReadDelay:
		rf.V[inst.X] = rf.DT
	case insts.OpWaitKey:
		e.executeWaitKey(inst)
	case insts.OpSetDelay:
		rf.DT = rf.V[inst.X]
	case insts.OpSetSound:
		rf.ST = rf.V[inst.X]
	case insts.OpAddIndex:
		e.lsu.AddIndex(inst.X)
	case insts.OpFontAddress:
		e.lsu.FontAddress(inst.X)
	case insts.OpStoreBCD:
		e.lsu.StoreBCD(inst.X)
	case insts.OpStoreRegs:
		e.lsu.StoreRegs(inst.X, e.quirks)
	case insts.OpLoadRegs:
		e.lsu.LoadRegs(inst.X, e.quirks)
	default:
		return StepResult{
			Err: &InvalidOpcodeError{Word: inst.Word, Addr: pc},
		}
	}

	return StepResult{}
}

// executeDraw XORs an n-row sprite at (Vx, Vy) onto the display and
// records the collision bit in VF.
func (e *Emulator) executeDraw(inst *insts.Instruction) {
	rows := e.lsu.SpriteRows(inst.N)
	collision := e.display.DrawSprite(
		e.regFile.V[inst.X], e.regFile.V[inst.Y], rows, e.quirks.DrawWraps)
	if collision {
		e.regFile.SetFlag(1)
	} else {
		e.regFile.SetFlag(0)
	}
}

// executeWaitKey completes once any key is down, storing the lowest
// such key in Vx. With nothing down it rewinds PC so the same fetch
// repeats next cycle; the cycle driver is never blocked.
func (e *Emulator) executeWaitKey(inst *insts.Instruction) {
	key, ok := e.keypad.AnyDown()
	if !ok {
		e.branchUnit.Refetch()
		return
	}
	e.regFile.V[inst.X] = key
}
