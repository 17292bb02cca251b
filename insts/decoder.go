package insts

// Op identifies a CHIP-8 operation.
type Op uint8

// CHIP-8 operations.
const (
	OpUnknown Op = iota
	OpSys         // 0nnn - machine code routine (rejected by the engine)
	OpClearScreen // 00E0
	OpReturn      // 00EE
	OpExit        // 00FD - interpreter exit extension
	OpJump        // 1nnn
	OpCall        // 2nnn
	OpSkipEqImm   // 3xnn
	OpSkipNeImm   // 4xnn
	OpSkipEqReg   // 5xy0
	OpLoadImm     // 6xnn
	OpAddImm      // 7xnn
	OpMove        // 8xy0
	OpOr          // 8xy1
	OpAnd         // 8xy2
	OpXor         // 8xy3
	OpAdd         // 8xy4
	OpSub         // 8xy5
	OpShiftRight  // 8xy6
	OpSubReverse  // 8xy7
	OpShiftLeft   // 8xyE
	OpSkipNeReg   // 9xy0
	OpLoadIndex   // Annn
	OpJumpV0      // Bnnn
	OpRandom      // Cxnn
	OpDraw        // Dxyn
	OpSkipKeyDown // Ex9E
	OpSkipKeyUp   // ExA1
	OpReadDelay   // Fx07
	OpWaitKey     // Fx0A
	OpSetDelay    // Fx15
	OpSetSound    // Fx18
	OpAddIndex    // Fx1E
	OpFontAddress // Fx29
	OpStoreBCD    // Fx33
	OpStoreRegs   // Fx55
	OpLoadRegs    // Fx65
)

// Format represents an instruction field layout.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatImplied        // no operand fields (CLS, RET, EXIT)
	FormatAddr           // 12-bit address in nnn (JP, CALL, LD I, JP V0, SYS)
	FormatRegImm         // register x + byte immediate nn (SE, SNE, LD, ADD, RND)
	FormatRegReg         // registers x and y (SE, SNE, ALU family)
	FormatReg            // single register x (SKP, SKNP, Fx timer/memory family)
	FormatDraw           // registers x, y + nibble n (DRW)
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Field layout

	X   uint8  // First register index (second nibble)
	Y   uint8  // Second register index (third nibble)
	N   uint8  // Low nibble (sprite height)
	NN  uint8  // Low byte immediate
	NNN uint16 // 12-bit address

	Word uint16 // Raw encoding
}

// Decoder decodes CHIP-8 machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit CHIP-8 instruction word.
// Decoding is total: unrecognized bit patterns yield an Instruction with
// OpUnknown, never an error. All operand fields are populated regardless
// of operation so callers can inspect partial matches.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes a word into a caller-supplied Instruction,
// avoiding an allocation on hot decode paths.
func (d *Decoder) DecodeInto(word uint16, inst *Instruction) {
	*inst = Instruction{
		Op:     OpUnknown,
		Format: FormatUnknown,
		X:      uint8(word >> 8 & 0xF),
		Y:      uint8(word >> 4 & 0xF),
		N:      uint8(word & 0xF),
		NN:     uint8(word & 0xFF),
		NNN:    word & 0xFFF,
		Word:   word,
	}

	switch word >> 12 {
	case 0x0:
		d.decodeSystem(word, inst)
	case 0x1:
		inst.Op, inst.Format = OpJump, FormatAddr
	case 0x2:
		inst.Op, inst.Format = OpCall, FormatAddr
	case 0x3:
		inst.Op, inst.Format = OpSkipEqImm, FormatRegImm
	case 0x4:
		inst.Op, inst.Format = OpSkipNeImm, FormatRegImm
	case 0x5:
		if inst.N == 0 {
			inst.Op, inst.Format = OpSkipEqReg, FormatRegReg
		}
	case 0x6:
		inst.Op, inst.Format = OpLoadImm, FormatRegImm
	case 0x7:
		inst.Op, inst.Format = OpAddImm, FormatRegImm
	case 0x8:
		d.decodeALU(word, inst)
	case 0x9:
		if inst.N == 0 {
			inst.Op, inst.Format = OpSkipNeReg, FormatRegReg
		}
	case 0xA:
		inst.Op, inst.Format = OpLoadIndex, FormatAddr
	case 0xB:
		inst.Op, inst.Format = OpJumpV0, FormatAddr
	case 0xC:
		inst.Op, inst.Format = OpRandom, FormatRegImm
	case 0xD:
		inst.Op, inst.Format = OpDraw, FormatDraw
	case 0xE:
		d.decodeKey(word, inst)
	case 0xF:
		d.decodeMisc(word, inst)
	}
}

// decodeSystem decodes the 0nnn family.
// 00E0 clears the screen, 00EE returns from a subroutine, 00FD exits the
// interpreter. Every other 0nnn pattern is the historical "call machine
// code routine" form, kept distinct from OpUnknown so callers can report
// it precisely.
func (d *Decoder) decodeSystem(word uint16, inst *Instruction) {
	switch word {
	case 0x00E0:
		inst.Op, inst.Format = OpClearScreen, FormatImplied
	case 0x00EE:
		inst.Op, inst.Format = OpReturn, FormatImplied
	case 0x00FD:
		inst.Op, inst.Format = OpExit, FormatImplied
	default:
		inst.Op, inst.Format = OpSys, FormatAddr
	}
}

// decodeALU decodes the 8xyn register-to-register family.
// Format: 8 | x | y | op, where op selects the ALU operation.
func (d *Decoder) decodeALU(word uint16, inst *Instruction) {
	ops := [...]Op{
		0x0: OpMove,
		0x1: OpOr,
		0x2: OpAnd,
		0x3: OpXor,
		0x4: OpAdd,
		0x5: OpSub,
		0x6: OpShiftRight,
		0x7: OpSubReverse,
		0xE: OpShiftLeft,
	}
	n := word & 0xF
	if int(n) < len(ops) && ops[n] != OpUnknown {
		inst.Op, inst.Format = ops[n], FormatRegReg
	}
}

// decodeKey decodes the Exnn key-skip family.
// Ex9E skips when the key in Vx is down, ExA1 when it is up.
func (d *Decoder) decodeKey(word uint16, inst *Instruction) {
	switch word & 0xFF {
	case 0x9E:
		inst.Op, inst.Format = OpSkipKeyDown, FormatReg
	case 0xA1:
		inst.Op, inst.Format = OpSkipKeyUp, FormatReg
	}
}

// decodeMisc decodes the Fxnn timer/index/memory family.
func (d *Decoder) decodeMisc(word uint16, inst *Instruction) {
	switch word & 0xFF {
	case 0x07:
		inst.Op, inst.Format = OpReadDelay, FormatReg
	case 0x0A:
		inst.Op, inst.Format = OpWaitKey, FormatReg
	case 0x15:
		inst.Op, inst.Format = OpSetDelay, FormatReg
	case 0x18:
		inst.Op, inst.Format = OpSetSound, FormatReg
	case 0x1E:
		inst.Op, inst.Format = OpAddIndex, FormatReg
	case 0x29:
		inst.Op, inst.Format = OpFontAddress, FormatReg
	case 0x33:
		inst.Op, inst.Format = OpStoreBCD, FormatReg
	case 0x55:
		inst.Op, inst.Format = OpStoreRegs, FormatReg
	case 0x65:
		inst.Op, inst.Format = OpLoadRegs, FormatReg
	}
}
