package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/0xVaibhav11/solana-unity/backend"
	"github.com/0xVaibhav11/solana-unity/base58"
	"github.com/0xVaibhav11/solana-unity/codec"
	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/env"
	"github.com/0xVaibhav11/solana-unity/idl"
	"github.com/0xVaibhav11/solana-unity/networkdetect"
	"github.com/0xVaibhav11/solana-unity/notify"
	"github.com/0xVaibhav11/solana-unity/spltoken"
	"github.com/0xVaibhav11/solana-unity/store"
	"github.com/0xVaibhav11/solana-unity/system"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
)

// Bridge exposes the interface-document codec and the submission pipeline
// over http. Every configured program gets its document parsed once at
// startup; the handlers only look things up.
type Bridge struct {
	ctx        context.Context
	log        *log.Logger
	cfg        *config.Config
	backend    *backend.Backend
	env        *env.Env
	splToken   *spltoken.Program
	system     *system.Program
	store      *store.Store
	notifier   *notify.Notifier
	nd         *networkdetect.NetworkDetector
	documents  map[solana.PublicKey]*idl.Idl
	httpServer *http.Server
}

func NewBridge(ctx context.Context, cfg *config.Config) *Bridge {
	b := &Bridge{
		ctx:       ctx,
		cfg:       cfg,
		log:       utils.NewLog(config.LogPath, config.BridgeLog),
		documents: make(map[solana.PublicKey]*idl.Idl),
	}
	b.backend = backend.NewBackend(ctx, cfg.Nodes, true, cfg.TransactionNodes, cfg.BlockHash)
	if cfg.Key != "" {
		b.backend.ImportWallet(cfg.Key)
	}
	b.backend.SetPlayer(cfg.User)
	b.env = env.NewEnv(ctx)
	b.splToken = spltoken.NewProgram(ctx, b.backend)
	b.system = system.NewProgram(ctx, b.backend)
	b.notifier = notify.NewNotifier(cfg.DingUrl)
	b.backend.SetNotifier(b.notifier)
	if cfg.DBUrl != "" {
		b.store = store.NewStore(ctx, cfg.DBUrl, cfg.DBScheme, cfg.DBUser, cfg.DBPasswd)
		b.backend.SetStore(b.store)
	}
	if cfg.NetStatus && len(cfg.Nodes) > 0 {
		b.nd = networkdetect.NewNetworkDetector(cfg.Nodes[0].Rpc, b.notifier)
	}
	for _, entry := range cfg.Programs {
		doc, err := os.ReadFile(config.DocumentPath + entry.Document)
		if err != nil {
			panic(err)
		}
		parsed, err := idl.Parse(doc, entry.Id)
		if err != nil {
			panic(err)
		}
		b.documents[entry.Id] = parsed
	}
	return b
}

func (b *Bridge) Service() {
	b.Start()
	b.StartRPC()
	<-b.ctx.Done()
	b.StopRPC()
	b.Stop()
}

func (b *Bridge) Start() {
	if b.nd != nil {
		b.nd.Start()
	}
	if b.store != nil {
		b.store.Start()
	}
	b.backend.Start()
	b.env.Start()
	if err := b.splToken.Start(); err != nil {
		b.log.Printf("spl token program start err: %v", err)
	}
	if err := b.system.Start(); err != nil {
		b.log.Printf("system program start err: %v", err)
	}
	b.log.Printf("bridge has started......")
}

func (b *Bridge) Stop() {
	if b.nd != nil {
		b.nd.Stop()
	}
	b.backend.Stop()
	if err := b.splToken.Stop(); err != nil {
		b.log.Printf("spl token program stop err: %v", err)
	}
	if err := b.system.Stop(); err != nil {
		b.log.Printf("system program stop err: %v", err)
	}
	b.env.Stop()
	if b.store != nil {
		b.store.Stop()
	}
	b.log.Printf("bridge has stopped......")
}

func (b *Bridge) StartRPC() {
	router := gin.New()
	g := router.Group("/api")
	g.GET("/document", b.getDocument)
	g.GET("/discriminator", b.getDiscriminator)
	g.POST("/instruction", b.buildInstruction)
	g.POST("/invoke", b.invoke)
	g.GET("/invocation", b.getInvocation)
	g.GET("/account", b.getAccount)
	g.GET("/balance", b.getBalance)
	g.GET("/token_balance", b.getTokenBalance)
	g.GET("/confirm", b.confirm)
	g.POST("/transfer", b.transfer)
	g.POST("/transfer_sol", b.transferSol)
	b.httpServer = &http.Server{
		Addr:    b.cfg.Listen,
		Handler: router,
	}
	b.log.Printf("start rpc server......")
	go func() {
		if err := b.httpServer.ListenAndServe(); err != nil {
			b.log.Printf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (b *Bridge) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.httpServer.Shutdown(ctx); err != nil {
		panic(err)
	}
	b.log.Printf("rpc server has stopped......")
}

func (b *Bridge) document(programStr string) (*idl.Idl, error) {
	programID, err := solana.PublicKeyFromBase58(programStr)
	if err != nil {
		return nil, err
	}
	doc, ok := b.documents[programID]
	if !ok {
		return nil, &idl.NotFoundError{Kind: "program", Name: programStr}
	}
	return doc, nil
}

func (b *Bridge) getDocument(c *gin.Context) {
	programStr, ok := c.GetQuery("program")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	doc, err := b.document(programStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	instructions := make([]*DocumentInstruction, 0, len(doc.Instructions))
	for _, ins := range doc.Instructions {
		args := make([]string, 0, len(ins.Args))
		for _, arg := range ins.Args {
			args = append(args, arg.Name+" "+arg.Type.String())
		}
		accounts := make([]string, 0, len(ins.Accounts))
		for _, account := range ins.Accounts {
			accounts = append(accounts, account.Name)
		}
		instructions = append(instructions, &DocumentInstruction{
			Name:     ins.Name,
			Args:     args,
			Accounts: accounts,
		})
	}
	layouts := make([]string, 0, len(doc.Accounts))
	for _, layout := range doc.Accounts {
		layouts = append(layouts, layout.Name)
	}
	c.JSON(200, &DocumentInfo{
		Program:      doc.ProgramID.String(),
		Name:         doc.Name,
		Version:      doc.Version,
		Instructions: instructions,
		Layouts:      layouts,
	})
}

func (b *Bridge) getDiscriminator(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	disc := idl.Discriminator(name)
	c.JSON(200, gin.H{
		"name":          name,
		"discriminator": disc[:],
	})
}

func (b *Bridge) resolveAccounts(infos []*AccountMetaInfo) ([]*solana.AccountMeta, error) {
	metas := make([]*solana.AccountMeta, 0, len(infos))
	for _, info := range infos {
		key, err := codec.AsPublicKey(info.Pubkey)
		if err != nil {
			return nil, err
		}
		metas = append(metas, &solana.AccountMeta{
			PublicKey:  key,
			IsSigner:   info.Signer,
			IsWritable: info.Writable,
		})
	}
	return metas, nil
}

func (b *Bridge) buildInstruction(c *gin.Context) {
	var request InstructionRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	doc, err := b.document(request.Program)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	metas, err := b.resolveAccounts(request.Accounts)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	ins, err := doc.BuildInstruction(request.Name, request.Args, metas)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	data, _ := ins.Data()
	accounts := make([]*AccountMetaInfo, 0, len(metas))
	for _, meta := range ins.Accounts() {
		accounts = append(accounts, &AccountMetaInfo{
			Pubkey:   meta.PublicKey.String(),
			Signer:   meta.IsSigner,
			Writable: meta.IsWritable,
		})
	}
	c.JSON(200, &InstructionInfo{
		Program:  ins.ProgramID().String(),
		Data:     base58.Encode(data),
		Accounts: accounts,
	})
}

func (b *Bridge) invoke(c *gin.Context) {
	var request InvokeRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	doc, err := b.document(request.Program)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	metas, err := b.resolveAccounts(request.Accounts)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	ins, err := doc.BuildInstruction(request.Name, request.Args, metas)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	id := nextInvokeId()
	if b.store != nil {
		accounts := make([]*store.CommittedInvocationAccount, 0, len(metas))
		for _, meta := range metas {
			accounts = append(accounts, &store.CommittedInvocationAccount{
				Pubkey:                meta.PublicKey.String(),
				Signer:                meta.IsSigner,
				Writable:              meta.IsWritable,
				CommittedInvocationId: id,
			})
		}
		b.store.StoreCommittedInvocation(&store.CommittedInvocation{
			Id:          id,
			Program:     request.Program,
			Instruction: request.Name,
			DataSize:    len(ins.IsData),
			Accounts:    accounts,
		})
	}
	if request.Simulate || b.cfg.Simulate {
		pubkeys := make([]solana.PublicKey, 0, len(metas))
		for _, meta := range metas {
			pubkeys = append(pubkeys, meta.PublicKey)
		}
		_, _, logs, unitsConsumed, err := b.backend.Simulate([]solana.Instruction{ins}, pubkeys)
		info := &SimulateInfo{Id: id, UnitsConsumed: unitsConsumed}
		if len(logs) > 0 {
			info.Logs = json.RawMessage(logs)
		}
		if err != nil {
			info.Error = err.Error()
		}
		c.JSON(200, info)
		return
	}
	signature, err := b.backend.Commit(0, id, []solana.Instruction{ins}, false, nil, nil)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, &InvokeInfo{Id: id, Signature: signature.String()})
}

func (b *Bridge) getInvocation(c *gin.Context) {
	if b.store == nil {
		c.JSON(500, "store is not configured")
		return
	}
	idStr, ok := c.GetQuery("id")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	committed, err := b.store.GetCommittedInvocation(id)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	executed, err := b.store.GetExecutedTransaction(id)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, &InvocationInfo{
		CommittedInvocations: buildCommittedInvocations(committed),
		ExecutedTransactions: buildExecutedTransactions(executed),
	})
}

func (b *Bridge) getAccount(c *gin.Context) {
	programStr, ok := c.GetQuery("program")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	layout, ok := c.GetQuery("layout")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	accountStr, ok := c.GetQuery("account")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	doc, err := b.document(programStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	pubkey, err := codec.AsPublicKey(accountStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	account, err := b.backend.Account(pubkey)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	if account.Account == nil {
		c.JSON(500, "account is missing")
		return
	}
	fields, err := doc.DecodeAccount(layout, account.Account.Data.GetBinary())
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	values := make(map[string]interface{}, len(fields))
	order := make([]string, 0, len(fields))
	for _, field := range fields {
		values[field.Name] = field.Value
		order = append(order, field.Name)
	}
	c.JSON(200, gin.H{
		"account": pubkey.String(),
		"layout":  layout,
		"height":  account.Height,
		"fields":  order,
		"values":  values,
	})
}

func (b *Bridge) getBalance(c *gin.Context) {
	accountStr, ok := c.GetQuery("account")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	pubkey, err := codec.AsPublicKey(accountStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	balance, err := b.backend.GetBalance(pubkey)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, gin.H{"account": pubkey.String(), "lamports": balance})
}

func (b *Bridge) getTokenBalance(c *gin.Context) {
	accountStr, ok := c.GetQuery("account")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	pubkey, err := codec.AsPublicKey(accountStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	balance, err := b.splToken.GetBalance(pubkey)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	response := gin.H{"account": pubkey.String(), "amount": balance}
	if tokenAccount := b.splToken.GetTokenAccount(pubkey); tokenAccount != nil {
		if token := b.env.Token(tokenAccount.Mint); token != nil {
			response["symbol"] = token.Symbol
			response["amount_ui"] = token.AmountUi(balance).String()
		}
	}
	c.JSON(200, response)
}

func (b *Bridge) confirm(c *gin.Context) {
	signatureStr, ok := c.GetQuery("signature")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	signature, err := solana.SignatureFromBase58(signatureStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	confirmed, err := b.backend.ConfirmTransaction(signature)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, gin.H{"signature": signatureStr, "confirmed": confirmed})
}

func (b *Bridge) transfer(c *gin.Context) {
	var request TransferRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	mint, err := codec.AsPublicKey(request.Mint)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	destination, err := codec.AsPublicKey(request.Destination)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	source := b.env.TokenAccount(mint)
	if source.IsZero() {
		c.JSON(500, "no token account for mint")
		return
	}
	if !b.backend.HasWallet(b.cfg.User) {
		c.JSON(500, "no wallet for user")
		return
	}
	ins, err := b.splToken.InstructionTransfer(source, destination, b.cfg.User, request.Amount)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	signature, err := b.backend.SendTransaction([]solana.Instruction{ins})
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	b.notifier.Text("transfer %d of %s to %s;\nsignature: %s;",
		request.Amount, mint.String(), destination.String(), signature.String())
	c.JSON(200, gin.H{"signature": signature.String()})
}

func (b *Bridge) transferSol(c *gin.Context) {
	var request TransferRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	destination, err := codec.AsPublicKey(request.Destination)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	if !b.backend.HasWallet(b.cfg.User) {
		c.JSON(500, "no wallet for user")
		return
	}
	ins, err := b.system.InstructionTransfer(b.cfg.User, destination, request.Amount)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	signature, err := b.backend.SendTransaction([]solana.Instruction{ins})
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, gin.H{"signature": signature.String()})
}
