// Command entropyd runs the entropy pool on a host system: it wires a
// seed store, a TRNG and software noise sources into the engine, runs
// the housekeeping loop, and emits random bytes on demand. It doubles
// as the reference wiring for embedding the pool in an application.
package main

import (
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/avaropoint/entropy/deviceid"
	"github.com/avaropoint/entropy/internal/version"
	"github.com/avaropoint/entropy/noise"
	"github.com/avaropoint/entropy/rng"
	"github.com/avaropoint/entropy/seedstore"
	"github.com/avaropoint/entropy/trng"
)

func main() {
	// .env is optional; flags and the real environment still win.
	_ = godotenv.Load()

	dataDir := flag.StringP("data-dir", "d", envOr("ENTROPYD_DATA_DIR", "."), "Directory for the seed store and device salt")
	backend := flag.String("store", envOr("ENTROPYD_STORE", "file"), "Seed store backend: file, sqlite or none")
	tag := flag.StringP("tag", "t", envOr("ENTROPYD_TAG", "entropyd "+version.Version), "Application tag stirred in at startup")
	count := flag.IntP("bytes", "n", 0, "Emit this many random bytes and exit (0 runs the housekeeping daemon)")
	hexOut := flag.BoolP("hex", "x", false, "Hex-encode emitted bytes")
	wait := flag.BoolP("wait", "w", false, "Wait for sufficient entropy credit before emitting")
	saveMinutes := flag.Uint16("save-interval", 60, "Minutes between automatic seed saves")
	useJitter := flag.Bool("jitter", false, "Harvest timer jitter instead of reading the OS TRNG")
	wipe := flag.Bool("wipe", false, "Destroy the pool state and persisted seed, then exit")
	showVersion := flag.BoolP("version", "V", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("entropyd v%s (built %s)", version.Version, version.BuildTime)
		return
	}

	if err := os.MkdirAll(*dataDir, 0700); err != nil {
		log.Fatalf("data dir: %v", err)
	}

	store, closeStore := openStore(*backend, *dataDir)
	defer closeStore()

	var source trng.Source
	if *useJitter {
		j := trng.NewJitter(time.Millisecond)
		defer j.Close()
		source = j
	} else {
		source = trng.NewOS()
	}

	id, err := deviceid.LoadOrCreate(*dataDir)
	if err != nil {
		log.Printf("device id unavailable: %v", err)
	}

	pool := rng.New(rng.Config{Store: store, TRNG: source, DeviceID: id})
	pool.SetAutoSaveInterval(*saveMinutes)
	pool.Begin(*tag)

	if *wipe {
		pool.Destroy()
		log.Print("pool state and persisted seed destroyed")
		return
	}

	pool.AddNoiseSource(&noise.Timing{})
	if !*useJitter {
		pool.AddNoiseSource(&noise.OS{})
	}

	if *count > 0 {
		emit(pool, *count, *hexOut, *wait)
		pool.Save()
		return
	}

	runDaemon(pool)
}

// emit writes count random bytes to stdout, optionally looping the
// pool until enough credit is available first.
func emit(pool *rng.Pool, count int, hexOut, wait bool) {
	if wait {
		for !pool.Available(count) {
			pool.Loop()
			time.Sleep(10 * time.Millisecond)
		}
	} else {
		pool.Loop()
	}

	buf := make([]byte, count)
	pool.Rand(buf)

	if hexOut {
		os.Stdout.WriteString(hex.EncodeToString(buf) + "\n") //nolint:errcheck
		return
	}
	os.Stdout.Write(buf) //nolint:errcheck
}

// runDaemon ticks the housekeeping loop until interrupted, saving the
// seed one last time on shutdown.
func runDaemon(pool *rng.Pool) {
	log.Printf("entropyd v%s: housekeeping loop running", version.Version)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			pool.Loop()
		case sig := <-stop:
			log.Printf("%s: saving seed and shutting down", sig)
			pool.Save()
			return
		}
	}
}

func openStore(backend, dataDir string) (seedstore.Store, func()) {
	switch backend {
	case "file":
		return seedstore.NewFile(filepath.Join(dataDir, "entropy.seed")), func() {}
	case "sqlite":
		s, err := seedstore.NewSQLite(filepath.Join(dataDir, "entropy.db"))
		if err != nil {
			log.Fatalf("open seed store: %v", err)
		}
		return s, func() { _ = s.Close() }
	case "none":
		return nil, func() {}
	default:
		log.Fatalf("unknown store backend %q", backend)
		return nil, nil
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
