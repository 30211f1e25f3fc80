package formatters

import (
	"reflect"
	"testing"
)

func TestStaticFallbackResolverSet(t *testing.T) {
	resolver := NewStaticFallbackResolver()
	resolver.Set("es_MX", "es-MX", "es", "", " es ", "en")

	got := resolver.Resolve("es-MX")
	if !reflect.DeepEqual(got, []string{"es", "en"}) {
		t.Fatalf("Resolve = %v", got)
	}

	got[0] = "mutated"
	if resolver.Resolve("es-MX")[0] != "es" {
		t.Fatal("Resolve must return a copy")
	}

	if chain := resolver.Resolve("fr"); chain != nil {
		t.Fatalf("unknown locale chain = %v", chain)
	}
}

func TestStaticFallbackResolverNil(t *testing.T) {
	var resolver *StaticFallbackResolver
	resolver.Set("en", "es")
	if chain := resolver.Resolve("en"); chain != nil {
		t.Fatalf("nil resolver chain = %v", chain)
	}
}
