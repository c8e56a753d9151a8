package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/api"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/config"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/discovery"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/geo"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/hire"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/onboarding"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/provider"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/session"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// app wires every flow of the terminal client together.
type app struct {
	cfg      *config.Config
	logger   *zap.SugaredLogger
	gateway  api.Gateway
	sessions *session.Store
	account  *onboarding.Flow
	mapView  *discovery.MapView
	hiring   *hire.Flow
	inbox    *provider.Home
	in       *bufio.Scanner
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	path := "config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting AjudaJá client against %s", cfg.API.BaseURL)

	gateway := api.NewClient(cfg.API.BaseURL, cfg.RequestTimeout, sugar)
	sessions := session.NewStore(sugar)
	locator := &geo.StaticLocator{
		Granted:  cfg.Device.PermissionGranted,
		Position: geo.Fix{Latitude: cfg.Device.Latitude, Longitude: cfg.Device.Longitude},
	}
	tracker := geo.NewTracker(locator, gateway, sessions, sugar)
	launcher := &hire.ExecLauncher{Command: cfg.WhatsApp.LaunchCommand}

	a := &app{
		cfg:      cfg,
		logger:   sugar,
		gateway:  gateway,
		sessions: sessions,
		account:  onboarding.NewFlow(gateway, sessions, sugar),
		mapView:  discovery.NewMapView(gateway, sessions, tracker, cfg.Search.RadiusMeters, sugar),
		hiring:   hire.NewFlow(gateway, sessions, launcher, cfg.WhatsApp.CountryCode, sugar),
		inbox:    provider.NewHome(gateway, sessions, tracker, sugar),
		in:       bufio.NewScanner(os.Stdin),
	}
	a.run(context.Background())
}

func (a *app) run(ctx context.Context) {
	for {
		fmt.Println("\n== AjudaJá ==")
		fmt.Println("[1] Login")
		fmt.Println("[2] Criar conta")
		fmt.Println("[0] Sair")
		switch a.prompt("> ") {
		case "1":
			a.loginScreen(ctx)
		case "2":
			a.createAccountScreen(ctx)
		case "0":
			return
		}
	}
}

func (a *app) loginScreen(ctx context.Context) {
	email := a.prompt("Email: ")
	password := a.prompt("Senha: ")

	userType, err := a.account.Login(ctx, email, password)
	if err != nil {
		fmt.Println("Erro:", err)
		return
	}
	if userType == api.UserTypeProvider {
		a.providerHomeScreen(ctx)
	} else {
		a.userHomeScreen(ctx)
	}
}

func (a *app) createAccountScreen(ctx context.Context) {
	form := onboarding.Form{
		Name:        a.prompt("Nome: "),
		Email:       a.prompt("Email: "),
		DateOfBirth: a.prompt("Data de nascimento (AAAA-MM-DD): "),
		Phone:       onboarding.FormatPhone(a.prompt("Celular: ")),
		Address:     a.prompt("Endereço: "),
		Password:    a.prompt("Senha: "),
	}
	form.ConfirmPassword = a.prompt("Confirme a senha: ")
	if strings.EqualFold(a.prompt("Prestador de serviço? (s/n): "), "s") {
		form.UserType = api.UserTypeProvider
	} else {
		form.UserType = api.UserTypeCommon
	}

	cont, err := a.account.Submit(ctx, form)
	if err != nil {
		fmt.Println("Erro no Cadastro:", err)
		a.account.Edit()
		return
	}
	if cont != nil {
		a.serviceSelectionScreen(ctx, *cont)
		return
	}
	fmt.Println("Conta criada com sucesso! Faça o login.")
}

func (a *app) serviceSelectionScreen(ctx context.Context, cont onboarding.Continuation) {
	selection := onboarding.NewServiceSelection(a.gateway, a.sessions, a.logger)
	if err := selection.Load(ctx); err != nil {
		fmt.Println("Erro de Rede:", err)
		return
	}

	for {
		fmt.Println("\nQuais são os serviços que você presta?")
		for _, svc := range selection.Catalog() {
			marker := " "
			for _, name := range selection.Selected() {
				if name == svc.Name {
					marker = "x"
				}
			}
			fmt.Printf("[%s] %d. %s\n", marker, svc.ID, svc.Name)
		}
		fmt.Println("Digite o nome de um serviço para (des)marcar, 'ok' para finalizar ou 'voltar':")
		input := a.prompt("> ")
		switch input {
		case "voltar":
			return
		case "ok":
			if err := selection.Finish(ctx, cont); err != nil {
				fmt.Println("Erro no Cadastro:", err)
				continue
			}
			fmt.Println("Conta de prestador criada com sucesso! Faça o login.")
			return
		default:
			selection.Toggle(input)
		}
	}
}

func (a *app) userHomeScreen(ctx context.Context) {
	if err := a.mapView.Load(ctx); err != nil {
		fmt.Println("Erro:", err)
		return
	}
	for {
		fmt.Println("\n== Mapa ==")
		for _, m := range a.mapView.Markers() {
			if m.Self {
				fmt.Printf("  * você em (%.4f, %.4f)\n", m.Latitude, m.Longitude)
				continue
			}
			fmt.Printf("  [%d] %s - %s\n", m.ProviderID, m.Name, strings.Join(m.Services, ", "))
		}
		fmt.Println("Comandos: filtrar <serviço> | ver <id> | atualizar | sair")
		input := a.prompt("> ")
		switch {
		case input == "sair":
			a.sessions.Clear()
			return
		case input == "atualizar":
			if err := a.mapView.Load(ctx); err != nil {
				fmt.Println("Erro:", err)
			}
		case strings.HasPrefix(input, "filtrar"):
			a.mapView.SetFilter(strings.TrimSpace(strings.TrimPrefix(input, "filtrar")))
		case strings.HasPrefix(input, "ver "):
			id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(input, "ver ")), 10, 64)
			if err != nil {
				fmt.Println("Id inválido.")
				continue
			}
			a.detailScreen(ctx, id)
		}
	}
}

func (a *app) detailScreen(ctx context.Context, providerID int64) {
	detail, err := a.mapView.Select(providerID)
	if err != nil {
		fmt.Println("Erro:", err)
		return
	}
	defer a.mapView.Close()

	fmt.Printf("\n%s\n%s\nTelefone: %s\n", detail.Name, detail.Services, detail.Phone)
	if a.prompt("Solicitar serviço? (s/n): ") != "s" {
		return
	}
	if err := a.hiring.Hire(ctx, detail.ProviderID, detail.Phone); err != nil {
		fmt.Println("Erro:", err)
	}
}

func (a *app) providerHomeScreen(ctx context.Context) {
	for {
		if err := a.inbox.Refresh(ctx); err != nil {
			fmt.Println("Erro:", err)
			return
		}
		fmt.Println("\n== Solicitações recebidas ==")
		if len(a.inbox.Requests()) == 0 {
			fmt.Println("Nenhuma solicitação ainda.")
		}
		for _, r := range a.inbox.Requests() {
			fmt.Printf("  #%d %s - %s\n", r.ID, r.CommonUser.Name, r.CommonUser.Phone)
		}
		fmt.Println("Comandos: atualizar | sair")
		switch a.prompt("> ") {
		case "sair":
			a.sessions.Clear()
			return
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
