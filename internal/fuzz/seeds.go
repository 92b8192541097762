package fuzztests

import "testing"

const maxFuzzInput = 4 << 10 // fragments are short; larger inputs only slow the corpus

var typeSeeds = []string{
	"()",
	"(str,)",
	"&'a mut Vec<T>",
	"&&'static str",
	"dyn for<'b> Fn(&'b T) -> Option<&'b T> + Send + 'a",
	"<T as Iterator>::Item",
	"::std::collections::HashMap<K, V>",
	"Box<dyn Iterator<Item = T>>",
	"impl Trait",
	"[T; N]",
	"fn(u8) -> !",
	"_",
	"&'",
	"Vec<",
}

var genericsSeeds = []string{
	"<>",
	"<'a, T>",
	"<'a: 'static, T: Clone + 'a, U = ()> where U: Iterator<Item = T>",
	"<T> where for<'b> T: Fn(&'b str)",
	"<const N: usize>",
	"<T, T>",
	"<T> where T::Item = U",
	"<'a",
}

func addSeeds(f *testing.F, seeds []string) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
