package insts

import "fmt"

// mnemonics maps operations to their assembly mnemonic.
var mnemonics = map[Op]string{
	OpSys:         "SYS",
	OpClearScreen: "CLS",
	OpReturn:      "RET",
	OpExit:        "EXIT",
	OpJump:        "JP",
	OpCall:        "CALL",
	OpSkipEqImm:   "SE",
	OpSkipNeImm:   "SNE",
	OpSkipEqReg:   "SE",
	OpLoadImm:     "LD",
	OpAddImm:      "ADD",
	OpMove:        "LD",
	OpOr:          "OR",
	OpAnd:         "AND",
	OpXor:         "XOR",
	OpAdd:         "ADD",
	OpSub:         "SUB",
	OpShiftRight:  "SHR",
	OpSubReverse:  "SUBN",
	OpShiftLeft:   "SHL",
	OpSkipNeReg:   "SNE",
	OpLoadIndex:   "LD",
	OpJumpV0:      "JP",
	OpRandom:      "RND",
	OpDraw:        "DRW",
	OpSkipKeyDown: "SKP",
	OpSkipKeyUp:   "SKNP",
	OpReadDelay:   "LD",
	OpWaitKey:     "LD",
	OpSetDelay:    "LD",
	OpSetSound:    "LD",
	OpAddIndex:    "ADD",
	OpFontAddress: "LD",
	OpStoreBCD:    "LD",
	OpStoreRegs:   "LD",
	OpLoadRegs:    "LD",
}

// Mnemonic returns the assembly mnemonic for the instruction,
// or "???" for an unknown encoding.
func (i *Instruction) Mnemonic() string {
	if m, ok := mnemonics[i.Op]; ok {
		return m
	}
	return "???"
}

// String renders the instruction in conventional assembly syntax,
// e.g. "LD V1, $0A" or "DRW V0, V1, $5". Unknown encodings render as
// a data word directive.
func (i *Instruction) String() string {
	switch i.Op {
	case OpClearScreen, OpReturn, OpExit:
		return i.Mnemonic()
	case OpSys:
		return fmt.Sprintf("SYS $%03X", i.NNN)
	case OpJump, OpCall:
		return fmt.Sprintf("%s $%03X", i.Mnemonic(), i.NNN)
	case OpJumpV0:
		return fmt.Sprintf("JP V0, $%03X", i.NNN)
	case OpLoadIndex:
		return fmt.Sprintf("LD I, $%03X", i.NNN)
	case OpSkipEqImm, OpSkipNeImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("%s V%X, $%02X", i.Mnemonic(), i.X, i.NN)
	case OpSkipEqReg, OpSkipNeReg, OpMove, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubReverse:
		return fmt.Sprintf("%s V%X, V%X", i.Mnemonic(), i.X, i.Y)
	case OpShiftRight, OpShiftLeft:
		return fmt.Sprintf("%s V%X", i.Mnemonic(), i.X)
	case OpDraw:
		return fmt.Sprintf("DRW V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpSkipKeyDown, OpSkipKeyUp:
		return fmt.Sprintf("%s V%X", i.Mnemonic(), i.X)
	case OpReadDelay:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("LD V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case OpFontAddress:
		return fmt.Sprintf("LD F, V%X", i.X)
	case OpStoreBCD:
		return fmt.Sprintf("LD B, V%X", i.X)
	case OpStoreRegs:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case OpLoadRegs:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	default:
		return fmt.Sprintf("DW $%04X", i.Word)
	}
}
