package compiler

import "fmt"

// Register represents a virtual machine register index.
type Register uint8

// BadRegister is returned where no register holds a value, e.g. for
// ambient class declarations.
const BadRegister Register = 254

// maxRegister is the highest register index the allocator hands out.
const maxRegister Register = 253

// RegisterAllocator manages register allocation for the unit being
// compiled. Freed registers are reused in LIFO order.
type RegisterAllocator struct {
	nextReg  Register // Index of the next fresh register
	maxReg   Register // Highest register index allocated so far
	freeRegs []Register
}

// NewRegisterAllocator creates an empty allocator.
func NewRegisterAllocator() *RegisterAllocator {
	return &RegisterAllocator{
		freeRegs: make([]Register, 0, 16),
	}
}

// Alloc allocates the next available register.
func (ra *RegisterAllocator) Alloc() Register {
	var reg Register
	if len(ra.freeRegs) > 0 {
		lastIdx := len(ra.freeRegs) - 1
		reg = ra.freeRegs[lastIdx]
		ra.freeRegs = ra.freeRegs[:lastIdx]
		log.Debugf("regalloc: reuse R%d (%d free)", reg, len(ra.freeRegs))
	} else {
		if ra.nextReg > maxRegister {
			panic("Compiler Error: Ran out of registers!")
		}
		reg = ra.nextReg
		ra.nextReg++
	}
	if reg > ra.maxReg {
		ra.maxReg = reg
	}
	return reg
}

// Free marks a register as available for reuse. Freeing a register twice
// or one that was never allocated panics.
func (ra *RegisterAllocator) Free(reg Register) {
	if reg >= ra.nextReg {
		panic(fmt.Sprintf("Compiler Error: freeing unallocated register R%d", reg))
	}
	for _, free := range ra.freeRegs {
		if free == reg {
			panic(fmt.Sprintf("Compiler Error: double free of register R%d", reg))
		}
	}
	ra.freeRegs = append(ra.freeRegs, reg)
}

// InUse returns the number of registers currently allocated.
func (ra *RegisterAllocator) InUse() int {
	return int(ra.nextReg) - len(ra.freeRegs)
}

// MaxRegs returns the number of register slots the compiled code needs.
func (ra *RegisterAllocator) MaxRegs() int {
	if ra.nextReg == 0 {
		return 0
	}
	return int(ra.maxReg) + 1
}

func (r Register) String() string {
	return fmt.Sprintf("R%d", r)
}
