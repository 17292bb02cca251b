// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of 16-bit big-endian CHIP-8 words into
// structured instruction representations. It supports the full base
// instruction set plus the EXIT (00FD) extension:
//   - System: CLS, RET, EXIT, SYS
//   - Flow: JP addr, JP V0+addr, CALL, SE, SNE, SKP, SKNP
//   - Register: LD, ADD, OR, AND, XOR, SUB, SUBN, SHR, SHL, RND
//   - Index and memory: LD I, ADD I, LD F, LD B, LD [I], LD Vx,[I]
//   - Display: DRW
//   - Timers and input: LD Vx,DT / LD DT,Vx / LD ST,Vx / LD Vx,K
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x6A02) // LD VA, $02
//	fmt.Printf("Op: %v, X: %d, NN: %#02x\n", inst.Op, inst.X, inst.NN)
package insts
