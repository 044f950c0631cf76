package opcode_test

import (
	"context"
	"errors"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"optab/internal/opcode"
)

var _ = Describe("Transformer", func() {
	var (
		mockCtrl *gomock.Controller
		vector   *MockVectorRewriter
		tx       *opcode.Transformer
		ctx      context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		vector = NewMockVectorRewriter(mockCtrl)
		tx = opcode.New(vector)
		ctx = context.Background()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should rewrite a reference table", func() {
		vector.EXPECT().
			Rewrite(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, line string) (string, error) {
				return "<" + line + ">", nil
			}).
			Times(3)

		in := []string{
			"Opcode Instruction Op/En 64-bit Mode Compat/Leg Mode Description",
			"05 id ADD EAX, imm32 I Valid Valid Add imm32 to EAX.",
			"REX.W + 05 id ADD RAX, imm32 I Valid N.E. Add imm32 sign-extended to 64-bits to RAX.",
			"80 /0 ib ADD r/m8, imm8 MI Valid Valid Add imm8 to r/m8.",
			"REX + 80 /0 ib ADD r/m8*, imm8 MI Valid N.E. Add sign-extended imm8 to r/m8.",
			"01 /r ADD r/m32, r32 MR Valid Valid Add r32 to r/m32.",
			"B8+ rd id MOV r32, imm32 OI Valid Valid Move imm32 to r32.",
			"VEX.128.66.0F.WIG 58 /r VADDPD xmm1,xmm2, xmm3/m128",
			"NP 0F 58 /r ADDPS xmm1, xmm2/m128",
			"E8 cd CALL rel32 D Valid Valid Call near, relative",
			"D0 /4 SAL r/m8, 1 M1 Valid Valid Multiply r/m8 by 2, once.",
			"C3 RET ZO Valid Valid Near return to calling procedure.",
			"04 ib ADD AL, imm8 I Valid Valid Add imm8 to AL.",
			"",
			"0F 05 SYSCALL ZO Valid Invalid Fast call to privilege level 0 system procedures.",
			"D3 /4 SHL r/m32, CL MC Valid Valid Multiply r/m32 by 2, CL times.",
			"EVEX.512.66.0F.W1 58 /r VADDPD zmm1 {k1}{z}, zmm2, zmm3/m512/m64bcst/{er}",
		}

		out, st, err := tx.Transform(ctx, in)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{
			"idadd0C IC 05",
			"idaw05",
			"iba80/0",
			"/ra01",
			"b8+ mov RC IC o",
			"<VEX.128.66.0F.WIG 58 /r VADDPD xmm1,xmm2, xmm3/m128>",
			"<NP 0F 58 /r ADDPS xmm1, xmm2/m128>",
			"cdc0Al IC e8",
			"s0A MA L1 m1 v0Av0Amultiply MA by 2 once.d0/4",
			"ret zo v0Av0Anear return to c0Aling procedure.c3",
			"iba04",
			"sysc0Al zo v0Ainv0Afast c0Al to privilege level 0 system procedures.0f05",
			"shl MC L1A mc v0Av0Amultiply MC by 2 L1A times.d3/4",
			"<EVEX.512.66.0F.W1 58 /r VADDPD zmm1 {k1}{z}, zmm2, zmm3/m512/m64bcst/{er}>",
		}))
		Expect(st.Read).To(Equal(len(in)))
		Expect(st.Written).To(Equal(14))
		Expect(st.Vector).To(Equal(3))
		Expect(st.Dropped[opcode.DropLeading]).To(Equal(1))
		Expect(st.Dropped[opcode.DropREX]).To(Equal(1))
		Expect(st.Dropped[opcode.DropEmpty]).To(Equal(1))
		Expect(st.DroppedTotal()).To(Equal(3))
	})

	It("should keep exactly the surviving rows of an alternating input", func() {
		in := []string{
			"90 NOP",
			"zz first drop",
			"C3 RET",
			"REX + 90 x",
			"F4 HLT",
			"",
			"CC INT3",
			"nop",
		}
		out, st, err := tx.Transform(ctx, in)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{"nop90", "retc3", "hltf4", "int3cc"}))
		Expect(st.DroppedTotal()).To(Equal(4))
	})

	It("should not run rules on vector rows", func() {
		line := "VEX.L0.0F38.W0 F2 /r ANDN r32a, r32b, r/m32 RVM V/V BMI1"
		vector.EXPECT().Rewrite(ctx, line).Return(line, nil)

		out, _, err := tx.Transform(ctx, []string{line})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{line}))
	})

	It("should abort the batch when the vector rewriter fails", func() {
		vector.EXPECT().Rewrite(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

		out, _, err := tx.Transform(ctx, []string{"90 NOP", "VEX.128 xmm1"})
		Expect(err).To(MatchError(ContainSubstring("line 2: vector rewrite: boom")))
		Expect(out).To(BeNil())
	})

	It("should fail on a vector row without a rewriter", func() {
		_, _, err := opcode.New(nil).Transform(ctx, []string{"EVEX.512 zmm1"})
		Expect(err).To(HaveOccurred())
	})

	It("should return an empty result for empty input", func() {
		out, st, err := tx.Transform(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
		Expect(st.Written).To(Equal(0))
	})
})
