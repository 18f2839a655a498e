package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"transit-admin/internal/cli"
)

func main() {
	var (
		operatorID = flag.String("operator-id", "", "UUID of the operator (subject)")
		role       = flag.String("role", "OPERATOR", "Operator role: ADMIN | OPERATOR")
		secret     = flag.String("secret", "", "JWT HMAC secret (HS256)")
	)
	flag.Parse()

	if *operatorID == "" || *secret == "" {
		fmt.Fprintln(os.Stderr, "usage: token --operator-id=<uuid> --role=ADMIN --secret='<secret>'")
		os.Exit(2)
	}

	token, claims, err := cli.GenerateOperatorToken(*secret, *operatorID, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("TOKEN:")
	fmt.Println(token)
	fmt.Println("\nCLAIMS:")
	fmt.Printf("  sub:  %s\n", claims.Subject)
	fmt.Printf("  role: %s\n", claims.Role)
	fmt.Printf("  iat:  %s\n", claims.IssuedAt.Time.UTC().Format(time.RFC3339))
	fmt.Printf("  exp:  %s\n", claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
}
