// seed_outfits.go creates outfits from a yaml file through the Wardrobe API.
//
// Usage:
//
//	go run scripts/seed_outfits.go -file outfits.yaml -api http://localhost:8700 -token $WARDROBE_ADMIN_TOKEN
//
// File format:
//
//	outfits:
//	  - label: Explorer
//	    target_temperatures: {min: -10, max: 25}
//	    stats:
//	      - {stat: MoveSpeed, weight: wanted}
//	      - {stat: CarryingCapacity, weight: 1.5}
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Wardrobe/internal/outfit"
)

type seedStat struct {
	Stat   string       `yaml:"stat"`
	Weight outfit.Level `yaml:"weight"`
}

type seedOutfit struct {
	Label              string                   `yaml:"label"`
	TargetTemperatures *outfit.TemperatureRange `yaml:"target_temperatures"`
	AutoTemp           *bool                    `yaml:"auto_temp"`
	AutoWorkPriorities *bool                    `yaml:"auto_work_priorities"`
	Stats              []seedStat               `yaml:"stats"`
}

type seedFile struct {
	Outfits []seedOutfit `yaml:"outfits"`
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) do(method, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, c.base+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "seed-script")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, respBody)
	}
	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}

func main() {
	file := flag.String("file", "outfits.yaml", "path to the outfits yaml")
	apiURL := flag.String("api", "http://localhost:8700", "Wardrobe API base URL")
	token := flag.String("token", os.Getenv("WARDROBE_ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print outfits without posting")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	if *dryRun {
		for _, o := range seed.Outfits {
			fmt.Printf("%s (%d stats)\n", o.Label, len(o.Stats))
			for _, s := range o.Stats {
				fmt.Printf("  %-30s %5.2f\n", s.Stat, float64(s.Weight))
			}
		}
		return
	}

	c := &client{base: *apiURL + "/api/v1", token: *token, http: &http.Client{Timeout: 10 * time.Second}}
	created, failed := 0, 0
	for _, o := range seed.Outfits {
		var snap outfit.Snapshot
		if err := c.do("POST", "/outfits", map[string]string{"label": o.Label}, &snap); err != nil {
			log.Printf("create %s: %v", o.Label, err)
			failed++
			continue
		}

		patch := map[string]interface{}{}
		if o.TargetTemperatures != nil {
			patch["target_temperatures"] = o.TargetTemperatures
		}
		if o.AutoTemp != nil {
			patch["auto_temp"] = *o.AutoTemp
		}
		if o.AutoWorkPriorities != nil {
			patch["auto_work_priorities"] = *o.AutoWorkPriorities
		}
		if len(patch) > 0 {
			if err := c.do("PATCH", fmt.Sprintf("/outfits/%d", snap.ID), patch, nil); err != nil {
				log.Printf("update %s: %v", o.Label, err)
			}
		}

		for _, s := range o.Stats {
			body := map[string]interface{}{"stat": s.Stat, "weight": float64(s.Weight)}
			if err := c.do("POST", fmt.Sprintf("/outfits/%d/stats", snap.ID), body, nil); err != nil {
				log.Printf("add %s to %s: %v", s.Stat, o.Label, err)
			}
		}
		created++
		log.Printf("created outfit %d %q", snap.ID, o.Label)
	}
	log.Printf("done: %d created, %d failed", created, failed)
}
