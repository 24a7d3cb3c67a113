package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/curvekey/curvekey-go/pkg/crypto/curve"
	"github.com/curvekey/curvekey-go/pkg/jose"
	"github.com/curvekey/curvekey-go/pkg/jwk"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "curves":
		runCurves()
	case "generate":
		runGenerate(os.Args[2:])
	case "pubkey":
		runPubkey(os.Args[2:])
	case "jwk":
		runJWK(os.Args[2:])
	case "raw":
		runRaw(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "recover":
		runRecover(os.Args[2:])
	case "derive":
		runDerive(os.Args[2:])
	case "token":
		runToken(os.Args[2:])
	default:
		log.Printf("Unknown command %q", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	log.Println("curvekey - key and signature codec for Weierstrass, Edwards and Montgomery curves")
	log.Println()
	log.Println("Commands:")
	log.Println("  curves                                  - List supported curves")
	log.Println("  generate -curve <name>                  - Generate a key pair")
	log.Println("  pubkey   -curve <name> -key <hex>       - Derive the public key")
	log.Println("  jwk      -curve <name> -key|-pub <hex>  - Convert a raw key to a JWK")
	log.Println("  raw      -curve <name>                  - Convert a JWK on stdin to raw hex")
	log.Println("  sign     -curve <name> -key <hex> -msg <text>")
	log.Println("  verify   -curve <name> -pub <hex> -msg <text> -sig <hex>")
	log.Println("  recover  -curve <name> -sig <hex> -msg <text>")
	log.Println("  derive   -curve <name> -key <hex> -peer <hex>")
	log.Println("  token    -curve <name> -key <hex>       - Mint a signed JWT")
}

func runCurves() {
	for _, name := range curve.SupportedCurves() {
		alg := curve.AlgorithmForCurve(name)
		if alg == "" {
			alg = "-"
		}
		fmt.Printf("%-10s %s\n", name, alg)
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		curveName  = fs.String("curve", "P-256", "Curve name")
		compressed = fs.Bool("compressed", false, "Emit the compressed public key")
		asJWK      = fs.Bool("jwk", false, "Emit the key pair as a private JWK")
	)
	fs.Parse(args)

	c := mustCurve(*curveName)
	priv, err := c.GeneratePrivateKey()
	if err != nil {
		log.Fatalf("Failed to generate private key: %v", err)
	}
	pub, err := c.PublicKey(priv, *compressed)
	if err != nil {
		log.Fatalf("Failed to derive public key: %v", err)
	}

	if *asJWK {
		key, err := jwk.EncodePrivate(c, priv)
		if err != nil {
			log.Fatalf("Failed to convert key to JWK: %v", err)
		}
		printJSON(key)
		return
	}
	fmt.Printf("private: %s\n", hex.EncodeToString(priv))
	fmt.Printf("public:  %s\n", hex.EncodeToString(pub))
}

func runPubkey(args []string) {
	fs := flag.NewFlagSet("pubkey", flag.ExitOnError)
	var (
		curveName  = fs.String("curve", "P-256", "Curve name")
		keyHex     = fs.String("key", "", "Private key (hex)")
		compressed = fs.Bool("compressed", false, "Emit the compressed public key")
	)
	fs.Parse(args)

	c := mustCurve(*curveName)
	pub, err := c.PublicKey(mustHex("key", *keyHex), *compressed)
	if err != nil {
		log.Fatalf("Failed to derive public key: %v", err)
	}
	fmt.Println(hex.EncodeToString(pub))
}

func runJWK(args []string) {
	fs := flag.NewFlagSet("jwk", flag.ExitOnError)
	var (
		curveName = fs.String("curve", "P-256", "Curve name")
		keyHex    = fs.String("key", "", "Private key (hex)")
		pubHex    = fs.String("pub", "", "Public key (hex)")
	)
	fs.Parse(args)

	c := mustCurve(*curveName)

	var key *jwk.Key
	var err error
	switch {
	case *keyHex != "":
		key, err = jwk.EncodePrivate(c, mustHex("key", *keyHex))
	case *pubHex != "":
		key, err = jwk.EncodePublic(c, mustHex("pub", *pubHex))
	default:
		log.Fatalf("Either -key or -pub is required")
	}
	if err != nil {
		log.Fatalf("Failed to convert key to JWK: %v", err)
	}

	thumb, err := jwk.Thumbprint(key)
	if err != nil {
		log.Fatalf("Failed to compute thumbprint: %v", err)
	}
	printJSON(key)
	fmt.Printf("thumbprint: %s\n", thumb)
}

func runRaw(args []string) {
	fs := flag.NewFlagSet("raw", flag.ExitOnError)
	var (
		curveName  = fs.String("curve", "P-256", "Curve name")
		compressed = fs.Bool("compressed", false, "Emit the compressed public key")
	)
	fs.Parse(args)

	c := mustCurve(*curveName)

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read JWK from stdin: %v", err)
	}
	key, err := jwk.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse JWK: %v", err)
	}

	if key.D != "" {
		priv, err := jwk.DecodePrivate(c, key)
		if err != nil {
			log.Fatalf("Failed to decode private JWK: %v", err)
		}
		fmt.Printf("private: %s\n", hex.EncodeToString(priv))
	}

	pub, err := jwk.DecodePublic(c, key)
	if err != nil {
		log.Fatalf("Failed to decode public JWK: %v", err)
	}
	if *compressed {
		if pub, err = c.NormalizePublicKey(pub, true); err != nil {
			log.Fatalf("Failed to compress public key: %v", err)
		}
	}
	fmt.Printf("public:  %s\n", hex.EncodeToString(pub))
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	var (
		curveName   = fs.String("curve", "P-256", "Curve name")
		keyHex      = fs.String("key", "", "Private key (hex)")
		msg         = fs.String("msg", "", "Message to sign")
		recoverable = fs.Bool("recoverable", false, "Append the recovery byte (Weierstrass only)")
	)
	fs.Parse(args)

	c := mustSigner(mustCurve(*curveName))
	priv := mustHex("key", *keyHex)

	var sig []byte
	var err error
	if *recoverable {
		sig, err = c.SignRecovered([]byte(*msg), priv)
	} else {
		sig, err = c.Sign([]byte(*msg), priv)
	}
	if err != nil {
		log.Fatalf("Failed to sign: %v", err)
	}
	fmt.Println(hex.EncodeToString(sig))
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		curveName = fs.String("curve", "P-256", "Curve name")
		pubHex    = fs.String("pub", "", "Public key (hex)")
		msg       = fs.String("msg", "", "Message that was signed")
		sigHex    = fs.String("sig", "", "Signature (hex)")
	)
	fs.Parse(args)

	c := mustSigner(mustCurve(*curveName))
	if !c.Verify(mustHex("sig", *sigHex), []byte(*msg), mustHex("pub", *pubHex)) {
		fmt.Println("invalid")
		os.Exit(1)
	}
	fmt.Println("valid")
}

func runRecover(args []string) {
	fs := flag.NewFlagSet("recover", flag.ExitOnError)
	var (
		curveName  = fs.String("curve", "P-256", "Curve name")
		sigHex     = fs.String("sig", "", "Recoverable signature (hex)")
		msg        = fs.String("msg", "", "Message that was signed")
		compressed = fs.Bool("compressed", false, "Emit the compressed public key")
	)
	fs.Parse(args)

	c := mustSigner(mustCurve(*curveName))
	pub, err := c.RecoverPublicKey(mustHex("sig", *sigHex), []byte(*msg), *compressed)
	if err != nil {
		log.Fatalf("Failed to recover public key: %v", err)
	}
	fmt.Println(hex.EncodeToString(pub))
}

func runDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	var (
		curveName = fs.String("curve", "X25519", "Curve name")
		keyHex    = fs.String("key", "", "Private key (hex)")
		peerHex   = fs.String("peer", "", "Peer public key (hex)")
	)
	fs.Parse(args)

	c := mustAgreer(mustCurve(*curveName))
	secret, err := c.SharedSecret(mustHex("key", *keyHex), mustHex("peer", *peerHex))
	if err != nil {
		log.Fatalf("Failed to derive shared secret: %v", err)
	}
	fmt.Println(hex.EncodeToString(secret))
}

func runToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	var (
		curveName  = fs.String("curve", "P-256", "Curve name")
		keyHex     = fs.String("key", "", "Private key (hex)")
		claimsJSON = fs.String("claims", `{"sub":"curvekey"}`, "Claims as a JSON object")
		keyID      = fs.String("kid", "", "Key ID (generated when empty)")
	)
	fs.Parse(args)

	c := mustSigner(mustCurve(*curveName))

	var claims map[string]interface{}
	if err := json.Unmarshal([]byte(*claimsJSON), &claims); err != nil {
		log.Fatalf("Invalid -claims JSON: %v", err)
	}

	signer, err := jose.NewSigner(c, mustHex("key", *keyHex), *keyID)
	if err != nil {
		log.Fatalf("Failed to create signer: %v", err)
	}
	token, err := signer.Sign(claims)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	pub, err := signer.PublicJWK()
	if err != nil {
		log.Fatalf("Failed to export verification key: %v", err)
	}

	fmt.Printf("token: %s\n", token)
	fmt.Printf("kid:   %s\n", signer.KeyID())
	fmt.Print("jwk:   ")
	printJSON(pub)
}

func mustCurve(name string) curve.Curve {
	c, err := curve.FromName(name, curve.System)
	if err != nil {
		log.Fatalf("Unsupported curve %q (supported: %v)", name, curve.SupportedCurves())
	}
	return c
}

func mustSigner(c curve.Curve) curve.Signer {
	s, ok := c.(curve.Signer)
	if !ok {
		log.Fatalf("Curve %s does not support signatures", c.Name())
	}
	return s
}

func mustAgreer(c curve.Curve) curve.KeyAgreer {
	a, ok := c.(curve.KeyAgreer)
	if !ok {
		log.Fatalf("Curve %s does not support key agreement", c.Name())
	}
	return a
}

func mustHex(name, value string) []byte {
	if value == "" {
		log.Fatalf("Missing required -%s", name)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		log.Fatalf("Invalid hex in -%s: %v", name, err)
	}
	return b
}

func printJSON(v interface{}) {
	out, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}
	fmt.Println(string(out))
}
