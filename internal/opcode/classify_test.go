package opcode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"optab/internal/opcode"
)

var _ = Describe("Classify", func() {
	DescribeTable("routing",
		func(line string, want opcode.Class) {
			Expect(opcode.Classify(line)).To(Equal(want))
		},
		Entry("VEX prefix", "VEX.128.66.0F.WIG 58 /r VADDPD", opcode.Vector),
		Entry("EVEX prefix", "EVEX.512.66.0F.W1 58 /r VADDPD", opcode.Vector),
		Entry("xmm register", "NP 0F 58 /r ADDPS xmm1, xmm2/m128", opcode.Vector),
		Entry("ymm register wins over a bad lead", "xx ymm0", opcode.Vector),
		Entry("zmm register", "62 zmm1", opcode.Vector),
		Entry("XMM is case sensitive", "NP 0F XMM1", opcode.DropLeading),
		Entry("empty line", "", opcode.DropEmpty),
		Entry("header row", "Opcode Instruction Op/En", opcode.DropLeading),
		Entry("lower-case hex", "c3 RET", opcode.DropLeading),
		Entry("hex letter past F", "G0 x", opcode.DropLeading),
		Entry("REX row", "REX + 80 /0 ib ADD r/m8*, imm8", opcode.DropREX),
		Entry("REX.W row is kept", "REX.W + 05 id ADD RAX, imm32", opcode.Row),
		Entry("R without REX", "RET x", opcode.Row),
		Entry("digit lead", "05 id ADD EAX, imm32", opcode.Row),
		Entry("hex letter lead", "F4 HLT", opcode.Row),
	)

	It("should name drop reasons for metrics", func() {
		Expect(opcode.DropEmpty.String()).To(Equal("empty"))
		Expect(opcode.DropLeading.String()).To(Equal("leading_char"))
		Expect(opcode.DropREX.String()).To(Equal("rex_prefix"))
		Expect(opcode.Vector.Dropped()).To(BeFalse())
		Expect(opcode.DropREX.Dropped()).To(BeTrue())
	})
})
