// Package model defines the aviation-safety dynamical system.
//
// Five exogenous drivers F1..F5 are affine in normalized time and clamped to
// [0.1, 1.0]. Eighteen couplings f1..f18 are affine in one indicator each and
// clamped to [0.05, 0.95]. [Aviation] combines them into the rate equations
// for X1..X8:
//
//	dX1 = F3 - f1(X2) f2(X3) f3(X4)
//	dX2 = (F1+F2+F4) f4(X4) f5(X6) f6(X7) - (F3+F5) f7(X8)
//	dX3 = F4 f8(X7) - (F3+F5) f9(X1)
//	dX4 = F2 f10(X2) f11(X7) - (F3+F5) f12(X1)
//	dX5 = f13(X2) - F5
//	dX6 = F2 f14(X2) - F5
//	dX7 = F2 f15(X2) f16(X3) f17(X4) - (F3+F5)
//	dX8 = F5 - f18(X2)
//
// Every rate is clamped to [-0.5, 0.5]. Time t in [0, 1] spans 2011-2025.
package model
